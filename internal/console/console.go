package console

import (
	"math/rand"

	"github.com/Garsondee/Brock-Sense/internal/env"
)

const (
	ramSize = 0x10000

	viewRows = 9
	viewCols = 10

	pokedexBytes = 19
	wildSpecies  = 12
)

// movePower is the damage dealt by each of the four fight-menu slots.
var movePower = [4]int{10, 0, 6, 4}

type battleKind uint8

const (
	battleWild battleKind = iota + 1
	battleLeader
)

type battle struct {
	kind     battleKind
	enemyHP  int
	enemyMax int
	power    int // damage the enemy deals per exchange
	cursor   int
	move     int
	fainted  bool // enemy HP reached 0; the battle closes on the next input
}

type member struct {
	level int
	hp    int
	maxHP int
}

type position struct {
	mapID, x, y int
}

// Console is a small in-process stand-in for the hand-held emulator. It keeps a
// WRAM image at the real addresses so the engine reads it exactly as it would read
// the emulator.
type Console struct {
	ram   [ramSize]byte
	addrs env.AddressMap
	maps  map[int]*TileMap

	pos   position
	start position

	party      []member
	startLevel int
	badges     uint8
	seen       [pokedexBytes]byte
	owned      [pokedexBytes]byte
	wildWins   int
	fight      *battle

	button   env.Button
	pressed  bool
	consumed bool
	frames   int

	seed          int64
	rng           *rand.Rand
	encounterRate float64
	leaderHP      int
	leaderPower   int
	wildHP        int
	wildPower     int
}

// ReadMemory copies WRAM from addr into buf.
func (c *Console) ReadMemory(addr uint32, buf []byte) uint32 {
	if addr >= ramSize {
		return 0
	}
	return uint32(copy(buf, c.ram[addr:]))
}

// Press holds b down. The game registers it on the next Tick.
func (c *Console) Press(b env.Button) {
	c.button = b
	c.pressed = true
	c.consumed = false
}

// Release lets go of b.
func (c *Console) Release(b env.Button) {
	if c.button == b {
		c.pressed = false
	}
}

// Tick advances the console by frames. A held button acts once per press.
func (c *Console) Tick(frames int) {
	if frames < 1 {
		return
	}
	if c.pressed && !c.consumed {
		c.handle(c.button)
		c.consumed = true
	}
	c.frames += frames
	c.sync()
}

// Frames returns the number of frames run since boot.
func (c *Console) Frames() int {
	return c.frames
}

// WalkableMatrix returns the 9x10 screen viewport with the player at row 4, col 4.
// The battle screen has no walkable tiles.
func (c *Console) WalkableMatrix() [][]int {
	grid := make([][]int, viewRows)
	for r := range grid {
		grid[r] = make([]int, viewCols)
	}
	if c.fight != nil {
		return grid
	}
	tm := c.maps[c.pos.mapID]
	for r := 0; r < viewRows; r++ {
		for col := 0; col < viewCols; col++ {
			wx := c.pos.x + col - env.DefaultAgentCell.Col
			wy := c.pos.y + r - env.DefaultAgentCell.Row
			if tm != nil && tm.IsPassable(wx, wy) {
				grid[r][col] = env.Walkable
			}
		}
	}
	return grid
}

// Restart returns to the boot state, replaying the same encounter sequence.
func (c *Console) Restart() {
	c.rng = rand.New(rand.NewSource(c.seed)) // #nosec G404 -- deterministic simulation
	c.pos = c.start
	c.party = []member{newMember(c.startLevel)}
	c.badges = 0
	c.seen = [pokedexBytes]byte{}
	c.owned = [pokedexBytes]byte{}
	c.wildWins = 0
	c.fight = nil
	c.pressed = false
	c.consumed = false
	c.sync()
}

// MapName returns the display name for a map id.
func (c *Console) MapName(id int) string {
	if tm, ok := c.maps[id]; ok {
		return tm.def.Name
	}
	return "?"
}

// TileMap returns the decoded map for id, or nil.
func (c *Console) TileMap(id int) *TileMap {
	return c.maps[id]
}

func newMember(level int) member {
	hp := 20 + 2*level
	return member{level: level, hp: hp, maxHP: hp}
}

func (c *Console) handle(b env.Button) {
	if c.fight != nil {
		c.handleBattle(b)
		return
	}
	switch b {
	case env.ButtonUp:
		c.walk(0, -1)
	case env.ButtonDown:
		c.walk(0, 1)
	case env.ButtonLeft:
		c.walk(-1, 0)
	case env.ButtonRight:
		c.walk(1, 0)
	case env.ButtonA:
		if c.badges&1 == 0 && c.nextToLeader() {
			c.fight = &battle{kind: battleLeader, enemyHP: c.leaderHP, enemyMax: c.leaderHP, power: c.leaderPower}
		}
	}
}

func (c *Console) walk(dx, dy int) {
	tm := c.maps[c.pos.mapID]
	if tm == nil {
		return
	}
	nx, ny := c.pos.x+dx, c.pos.y+dy
	if !tm.IsPassable(nx, ny) {
		return
	}
	c.pos.x, c.pos.y = nx, ny
	if w, ok := tm.WarpAt(nx, ny); ok {
		c.pos = position{mapID: w.ToMap, x: w.ToX, y: w.ToY}
		return
	}
	if tm.TileAt(nx, ny) == TileGrass && c.rng.Float64() < c.encounterRate {
		c.startWild()
	}
}

func (c *Console) startWild() {
	species := 1 + c.rng.Intn(wildSpecies)
	c.seen[(species-1)/8] |= 1 << uint((species-1)%8)
	c.fight = &battle{kind: battleWild, enemyHP: c.wildHP, enemyMax: c.wildHP, power: c.wildPower}
}

func (c *Console) nextToLeader() bool {
	tm := c.maps[c.pos.mapID]
	if tm == nil {
		return false
	}
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if tm.TileAt(c.pos.x+d[0], c.pos.y+d[1]) == TileLeader {
			return true
		}
	}
	return false
}

func (c *Console) handleBattle(b env.Button) {
	f := c.fight
	if f.fainted {
		c.endBattle(true)
		return
	}
	switch b {
	case env.ButtonUp:
		f.cursor = (f.cursor + len(movePower) - 1) % len(movePower)
	case env.ButtonDown:
		f.cursor = (f.cursor + 1) % len(movePower)
	case env.ButtonA:
		c.exchange()
	case env.ButtonB:
		if f.kind == battleWild {
			c.endBattle(false)
		}
	}
}

// exchange resolves one round: the selected move, then the enemy's reply.
func (c *Console) exchange() {
	f := c.fight
	f.move = f.cursor
	f.enemyHP -= movePower[f.move]
	if f.enemyHP <= 0 {
		f.enemyHP = 0
		f.fainted = true
		return
	}
	lead := &c.party[0]
	lead.hp -= f.power
	if lead.hp <= 0 {
		c.blackout()
	}
}

func (c *Console) endBattle(won bool) {
	kind := c.fight.kind
	c.fight = nil
	if !won {
		return
	}
	switch kind {
	case battleLeader:
		c.badges |= 1
	case battleWild:
		c.wildWins++
		if c.wildWins%2 == 0 {
			lead := &c.party[0]
			lead.level++
			lead.maxHP += 2
			lead.hp += 2
		}
	}
}

func (c *Console) blackout() {
	c.fight = nil
	c.pos = c.start
	for i := range c.party {
		c.party[i].hp = c.party[i].maxHP
	}
}

// sync writes the game state into WRAM.
func (c *Console) sync() {
	a := c.addrs
	c.poke(a.PlayerX, byte(c.pos.x))
	c.poke(a.PlayerY, byte(c.pos.y))
	c.poke(a.MapID, byte(c.pos.mapID))
	c.poke(a.Badges, c.badges)
	c.poke(a.PartyCount, byte(len(c.party)))
	for i, m := range c.party {
		if i >= len(a.PartyLevels) {
			break
		}
		c.poke(a.PartyLevels[i], byte(m.level))
		c.poke16(a.PartyHP[i], m.hp)
		c.poke16(a.PartyMaxHP[i], m.maxHP)
	}
	for i := 0; i < pokedexBytes; i++ {
		c.poke(a.PokedexSeen+uint32(i), c.seen[i])
		c.poke(a.PokedexOwned+uint32(i), c.owned[i])
	}

	if f := c.fight; f != nil {
		c.poke(a.BattleFlag, byte(f.kind))
		c.poke16(a.EnemyHP, f.enemyHP)
		c.poke16(a.EnemyHPMax, f.enemyMax)
		c.poke(a.FightMenu, byte(f.cursor))
		c.poke(a.CurrentMove, byte(f.move))
	} else {
		c.poke(a.BattleFlag, 0)
		c.poke16(a.EnemyHP, 0)
		c.poke16(a.EnemyHPMax, 0)
		c.poke(a.FightMenu, 0)
		c.poke(a.CurrentMove, 0)
	}

	tm := c.maps[c.pos.mapID]
	grass, standing := byte(0), byte(tileIDFloor)
	if tm != nil && tm.def.HasGrass {
		grass = tileIDGrass
		if tm.TileAt(c.pos.x, c.pos.y) == TileGrass {
			standing = tileIDGrass
		}
	}
	c.poke(a.GrassTile, grass)
	c.poke(a.StandingTile, standing)
}

func (c *Console) poke(addr uint32, v byte) {
	if addr < ramSize {
		c.ram[addr] = v
	}
}

func (c *Console) poke16(addr uint32, v int) {
	if v < 0 {
		v = 0
	}
	c.poke(addr, byte(v>>8))
	c.poke(addr+1, byte(v))
}
