package env

// Walkable is the grid value for a tile the player can step onto.
const Walkable = 1

// Cell addresses one entry of the walkability viewport.
type Cell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// DefaultAgentCell is where the player sprite sits in the 9x10 screen viewport.
var DefaultAgentCell = Cell{Row: 4, Col: 4}

// WallStatus reports, per direction, whether the neighbouring tile is walkable.
type WallStatus struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Closed returns how many of the four directions are blocked.
func (w WallStatus) Closed() int {
	n := 0
	for _, open := range [4]bool{w.Up, w.Down, w.Left, w.Right} {
		if !open {
			n++
		}
	}
	return n
}

// SenseWalls reads the four neighbours of the agent cell. Out-of-bounds neighbours
// count as blocked; a grid with no rows or columns, or one that does not contain the
// agent cell, reports every direction closed.
func SenseWalls(grid [][]int, agent Cell) WallStatus {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return WallStatus{}
	}
	if !inGrid(grid, agent.Row, agent.Col) {
		return WallStatus{}
	}
	return WallStatus{
		Up:    walkableAt(grid, agent.Row-1, agent.Col),
		Down:  walkableAt(grid, agent.Row+1, agent.Col),
		Left:  walkableAt(grid, agent.Row, agent.Col-1),
		Right: walkableAt(grid, agent.Row, agent.Col+1),
	}
}

func inGrid(grid [][]int, row, col int) bool {
	if row < 0 || row >= len(grid) {
		return false
	}
	return col >= 0 && col < len(grid[row])
}

func walkableAt(grid [][]int, row, col int) bool {
	return inGrid(grid, row, col) && grid[row][col] == Walkable
}
