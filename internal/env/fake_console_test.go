package env

import "fmt"

// frame is the game state a fakeConsole exposes after one tick.
type frame struct {
	x, y, mapID int
	badges      uint8
	battle      bool
	enemyHP     int
	enemyMax    int
	menu        int
	grass       bool
}

// fakeConsole replays a scripted sequence of frames, one per Tick, and records
// every input it receives.
type fakeConsole struct {
	ram    map[uint32]byte
	grid   [][]int
	frames []frame
	inputs []string
}

func newFakeConsole(initial frame, script ...frame) *fakeConsole {
	f := &fakeConsole{
		ram:    map[uint32]byte{},
		grid:   openGrid(9, 10),
		frames: script,
	}
	f.load(initial)
	return f
}

func (f *fakeConsole) ReadMemory(addr uint32, buf []byte) uint32 {
	for i := range buf {
		buf[i] = f.ram[addr+uint32(i)]
	}
	return uint32(len(buf))
}

func (f *fakeConsole) Press(b Button) {
	f.inputs = append(f.inputs, "press "+b.String())
}

func (f *fakeConsole) Release(b Button) {
	f.inputs = append(f.inputs, "release "+b.String())
}

func (f *fakeConsole) Tick(frames int) {
	f.inputs = append(f.inputs, fmt.Sprintf("tick %d", frames))
	if len(f.frames) == 0 {
		return
	}
	f.load(f.frames[0])
	f.frames = f.frames[1:]
}

func (f *fakeConsole) WalkableMatrix() [][]int {
	return f.grid
}

func (f *fakeConsole) load(fr frame) {
	a := RedAddressMap
	f.ram[a.PlayerX] = byte(fr.x)
	f.ram[a.PlayerY] = byte(fr.y)
	f.ram[a.MapID] = byte(fr.mapID)
	f.ram[a.Badges] = fr.badges
	f.ram[a.PartyCount] = 1
	f.ram[a.PartyLevels[0]] = 5
	f.ram[a.BattleFlag] = 0
	if fr.battle {
		f.ram[a.BattleFlag] = 1
	}
	f.ram[a.EnemyHP] = byte(fr.enemyHP >> 8)
	f.ram[a.EnemyHP+1] = byte(fr.enemyHP)
	f.ram[a.EnemyHPMax] = byte(fr.enemyMax >> 8)
	f.ram[a.EnemyHPMax+1] = byte(fr.enemyMax)
	f.ram[a.FightMenu] = byte(fr.menu)
	f.ram[a.GrassTile] = 0x52
	f.ram[a.StandingTile] = 0x2C
	if fr.grass {
		f.ram[a.StandingTile] = 0x52
	}
}

func openGrid(rows, cols int) [][]int {
	g := make([][]int, rows)
	for r := range g {
		g[r] = make([]int, cols)
		for c := range g[r] {
			g[r][c] = Walkable
		}
	}
	return g
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
