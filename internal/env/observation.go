package env

// baseSlots is the length of the base observation.
const baseSlots = 11

// menuSlots is the size of the fight-menu one-hot.
const menuSlots = 4

// ObservationLayout fixes the shape of the observation vector for one configuration.
type ObservationLayout struct {
	Rich     bool `yaml:"rich"`
	GridRows int  `yaml:"grid_rows"`
	GridCols int  `yaml:"grid_cols"`
}

// DefaultObservationLayout is the base 11-slot vector over a 9x10 viewport.
var DefaultObservationLayout = ObservationLayout{GridRows: 9, GridCols: 10}

// Len is the vector length. It depends only on the layout, never on the mode.
func (l ObservationLayout) Len() int {
	if !l.Rich {
		return baseSlots
	}
	return baseSlots + l.gridCells() + menuSlots
}

func (l ObservationLayout) gridCells() int {
	if l.GridRows <= 0 || l.GridCols <= 0 {
		return 0
	}
	return l.GridRows * l.GridCols
}

// BuildObservation assembles the vector. Slots that mean nothing in the current
// mode hold the sentinel.
func BuildObservation(l ObservationLayout, s GameSnapshot, walls WallStatus, grid [][]int, mem *EpisodeMemory, mode Mode) []float64 {
	rules := rulesFor(mode)
	out := make([]float64, 0, l.Len())
	base := rules.observe(s, walls, mem)
	out = append(out, base[:]...)
	if !l.Rich {
		return out
	}
	out = appendGrid(out, grid, l.GridRows, l.GridCols)
	menu := make([]float64, menuSlots)
	rules.menu(s, menu)
	return append(out, menu...)
}

func observeExploration(s GameSnapshot, walls WallStatus, mem *EpisodeMemory) [baseSlots]float64 {
	return [baseSlots]float64{
		float64(s.Location.X),
		float64(s.Location.Y),
		float64(s.Location.MapID),
		boolSlot(s.InBattle),
		boolSlot(s.IsGrassTile),
		Sentinel,
		mem.LastAction.OrSentinel(),
		boolSlot(walls.Up),
		boolSlot(walls.Down),
		boolSlot(walls.Right),
		boolSlot(walls.Left),
	}
}

func observeBattle(s GameSnapshot, _ WallStatus, mem *EpisodeMemory) [baseSlots]float64 {
	return [baseSlots]float64{
		Sentinel, Sentinel, Sentinel,
		boolSlot(s.InBattle),
		boolSlot(s.IsGrassTile),
		EnemyHPFraction(s),
		mem.LastAction.OrSentinel(),
		Sentinel, Sentinel, Sentinel, Sentinel,
	}
}

// EnemyHPFraction is enemy HP over max HP with the denominator clamped to 1.
func EnemyHPFraction(s GameSnapshot) float64 {
	denom := s.EnemyHPMax
	if denom < 1 {
		denom = 1
	}
	return float64(s.EnemyHP) / float64(denom)
}

// appendGrid flattens grid row-major into rows*cols slots, zero-filling anything
// the grid does not cover.
func appendGrid(out []float64, grid [][]int, rows, cols int) []float64 {
	if rows <= 0 || cols <= 0 {
		return out
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := 0.0
			if inGrid(grid, r, c) {
				v = float64(grid[r][c])
			}
			out = append(out, v)
		}
	}
	return out
}

func fillSentinel(_ GameSnapshot, out []float64) {
	for i := range out {
		out[i] = Sentinel
	}
}

// fillMenuOneHot marks the fight-menu cursor. An out-of-range status means no selection.
func fillMenuOneHot(s GameSnapshot, out []float64) {
	for i := range out {
		out[i] = 0
	}
	if s.FightMenuStatus >= 0 && s.FightMenuStatus < len(out) {
		out[s.FightMenuStatus] = 1
	}
}

func boolSlot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
