package console

// TileKind identifies what occupies a world tile.
type TileKind uint8

const (
	TileWall      TileKind = iota // Impassable
	TileFloor                     // Plain walkable ground
	TileGrass                     // Walkable, may trigger a wild encounter
	TileWarp                      // Walkable, moves the player to another map
	TileLeader                    // Gym leader sprite, impassable
	tileKindCount                 // sentinel
)

// tileFromRune decodes one character of a map layout.
func tileFromRune(r rune) TileKind {
	switch r {
	case '.':
		return TileFloor
	case '"':
		return TileGrass
	case 'W':
		return TileWarp
	case 'B':
		return TileLeader
	default:
		return TileWall
	}
}

// passable returns true if the player can stand on the tile.
func (k TileKind) passable() bool {
	switch k {
	case TileFloor, TileGrass, TileWarp:
		return true
	default:
		return false
	}
}

// Tile ids written to WRAM for the standing-tile and tileset-grass registers.
const (
	tileIDFloor = 0x2C
	tileIDGrass = 0x52
)

// Warp links a tile on one map to an arrival tile on another.
type Warp struct {
	X, Y     int
	ToMap    int
	ToX, ToY int
}

// MapDef is one hand-authored map.
type MapDef struct {
	ID     int
	Name   string
	Layout []string // row-major, y down
	Warps  []Warp
	// HasGrass marks maps whose tileset defines a grass tile.
	HasGrass bool
}

// TileMap is a decoded MapDef.
type TileMap struct {
	def   MapDef
	tiles [][]TileKind
	warps map[[2]int]Warp
}

// NewTileMap decodes def. Ragged rows are padded with walls.
func NewTileMap(def MapDef) *TileMap {
	cols := 0
	for _, row := range def.Layout {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	tiles := make([][]TileKind, len(def.Layout))
	for y, row := range def.Layout {
		tiles[y] = make([]TileKind, cols)
		for x, r := range []rune(row) {
			tiles[y][x] = tileFromRune(r)
		}
	}
	warps := make(map[[2]int]Warp, len(def.Warps))
	for _, w := range def.Warps {
		warps[[2]int{w.X, w.Y}] = w
	}
	return &TileMap{def: def, tiles: tiles, warps: warps}
}

// Rows returns the map height in tiles.
func (tm *TileMap) Rows() int { return len(tm.tiles) }

// Cols returns the map width in tiles.
func (tm *TileMap) Cols() int {
	if len(tm.tiles) == 0 {
		return 0
	}
	return len(tm.tiles[0])
}

// TileAt returns the tile at (x, y); outside the map is wall.
func (tm *TileMap) TileAt(x, y int) TileKind {
	if y < 0 || y >= len(tm.tiles) || x < 0 || x >= len(tm.tiles[y]) {
		return TileWall
	}
	return tm.tiles[y][x]
}

// IsPassable returns true if the player may step onto (x, y).
func (tm *TileMap) IsPassable(x, y int) bool {
	return tm.TileAt(x, y).passable()
}

// WarpAt returns the warp leaving from (x, y), if any.
func (tm *TileMap) WarpAt(x, y int) (Warp, bool) {
	w, ok := tm.warps[[2]int{x, y}]
	return w, ok
}

// Map ids used by the stock world. They follow the game's own numbering.
const (
	MapPallet     = 0
	MapRouteNorth = 12
	MapLab        = 40
	MapGym        = 54
)

// StockMaps is the world the simulated console boots into: a town with a neutral
// lab, a corridor route whose top edge leads to the gym, and the gym itself.
var StockMaps = []MapDef{
	{
		ID:   MapPallet,
		Name: "Pallet Town",
		Layout: []string{
			`#####W####`,
			`#........#`,
			`#."""....#`,
			`#."""....#`,
			`W........#`,
			`#........#`,
			`#........#`,
			`#........#`,
			`##########`,
		},
		Warps: []Warp{
			{X: 5, Y: 0, ToMap: MapRouteNorth, ToX: 3, ToY: 14},
			{X: 0, Y: 4, ToMap: MapLab, ToX: 3, ToY: 3},
		},
		HasGrass: true,
	},
	{
		ID:   MapLab,
		Name: "Oak's Lab",
		Layout: []string{
			`######`,
			`#....#`,
			`#....#`,
			`#....#`,
			`###W##`,
		},
		Warps: []Warp{
			{X: 3, Y: 4, ToMap: MapPallet, ToX: 1, ToY: 4},
		},
	},
	{
		ID:   MapRouteNorth,
		Name: "Route",
		Layout: []string{
			`###W###`,
			`#.....#`,
			`#.""".#`,
			`#.""".#`,
			`#.....#`,
			`##...##`,
			`#.....#`,
			`#""...#`,
			`#"".#.#`,
			`#.....#`,
			`#.."".#`,
			`#.."".#`,
			`#.....#`,
			`#.....#`,
			`#.....#`,
			`###W###`,
		},
		Warps: []Warp{
			{X: 3, Y: 0, ToMap: MapGym, ToX: 3, ToY: 6},
			{X: 3, Y: 15, ToMap: MapPallet, ToX: 5, ToY: 1},
		},
		HasGrass: true,
	},
	{
		ID:   MapGym,
		Name: "Pewter Gym",
		Layout: []string{
			`#######`,
			`#..B..#`,
			`#.....#`,
			`#.#.#.#`,
			`#.....#`,
			`#.....#`,
			`#.....#`,
			`###W###`,
		},
		Warps: []Warp{
			{X: 3, Y: 7, ToMap: MapRouteNorth, ToX: 3, ToY: 1},
		},
	},
}
