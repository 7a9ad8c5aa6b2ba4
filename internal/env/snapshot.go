package env

import "math/bits"

// MemoryReader reads emulated memory from a flat address into buf and returns the
// number of bytes actually read.
type MemoryReader interface {
	ReadMemory(addr uint32, buf []byte) uint32
}

// Location is the player's world position.
type Location struct {
	X     int
	Y     int
	MapID int
}

// PartyHP holds current and max HP per party slot.
type PartyHP struct {
	Current []int
	Max     []int
}

// GameSnapshot is one point-in-time read of game memory. Treat it as immutable.
type GameSnapshot struct {
	Location        Location
	Badges          int
	Levels          []int
	PartyHP         PartyHP
	EnemyHP         int
	EnemyHPMax      int
	SeenPokemon     int
	CaughtPokemon   int
	InBattle        bool
	IsGrassTile     bool
	FightMenuStatus int
	CurrentMove     int
}

// TotalLevels sums the party levels.
func (s GameSnapshot) TotalLevels() int {
	total := 0
	for _, l := range s.Levels {
		total += l
	}
	return total
}

// maxPartySize is the number of party slots in WRAM.
const maxPartySize = 6

// pokedexBytes is the size of each of the owned/seen bit fields.
const pokedexBytes = 19

// AddressMap lists the WRAM addresses the reader pulls from.
type AddressMap struct {
	PlayerX      uint32
	PlayerY      uint32
	MapID        uint32
	Badges       uint32
	PartyCount   uint32
	PartyLevels  [maxPartySize]uint32
	PartyHP      [maxPartySize]uint32 // big-endian u16
	PartyMaxHP   [maxPartySize]uint32 // big-endian u16
	EnemyHP      uint32               // big-endian u16
	EnemyHPMax   uint32               // big-endian u16
	BattleFlag   uint32
	FightMenu    uint32
	CurrentMove  uint32
	PokedexOwned uint32
	PokedexSeen  uint32
	StandingTile uint32
	GrassTile    uint32
}

// RedAddressMap is the Pokémon Red/Blue (international) WRAM layout.
var RedAddressMap = AddressMap{
	PlayerX:      0xD362,
	PlayerY:      0xD361,
	MapID:        0xD35E,
	Badges:       0xD356,
	PartyCount:   0xD163,
	PartyLevels:  [maxPartySize]uint32{0xD18C, 0xD1B8, 0xD1E4, 0xD210, 0xD23C, 0xD268},
	PartyHP:      [maxPartySize]uint32{0xD16C, 0xD198, 0xD1C4, 0xD1F0, 0xD21C, 0xD248},
	PartyMaxHP:   [maxPartySize]uint32{0xD18D, 0xD1B9, 0xD1E5, 0xD211, 0xD23D, 0xD269},
	EnemyHP:      0xCFE6,
	EnemyHPMax:   0xCFF4,
	BattleFlag:   0xD057,
	FightMenu:    0xCC26,
	CurrentMove:  0xCCDC,
	PokedexOwned: 0xD2F7,
	PokedexSeen:  0xD30A,
	StandingTile: 0xCFC6,
	GrassTile:    0xD535,
}

// ReadSnapshot translates raw memory into a GameSnapshot. Short reads decode as zero.
func ReadSnapshot(mem MemoryReader, addrs AddressMap) GameSnapshot {
	r := memReader{mem: mem}

	count := r.u8(addrs.PartyCount)
	if count > maxPartySize {
		count = maxPartySize
	}
	levels := make([]int, count)
	current := make([]int, count)
	maxHP := make([]int, count)
	for i := 0; i < count; i++ {
		levels[i] = r.u8(addrs.PartyLevels[i])
		current[i] = r.u16(addrs.PartyHP[i])
		maxHP[i] = r.u16(addrs.PartyMaxHP[i])
	}

	grass := r.u8(addrs.GrassTile)
	return GameSnapshot{
		Location: Location{
			X:     r.u8(addrs.PlayerX),
			Y:     r.u8(addrs.PlayerY),
			MapID: r.u8(addrs.MapID),
		},
		Badges:          bits.OnesCount8(uint8(r.u8(addrs.Badges))),
		Levels:          levels,
		PartyHP:         PartyHP{Current: current, Max: maxHP},
		EnemyHP:         r.u16(addrs.EnemyHP),
		EnemyHPMax:      r.u16(addrs.EnemyHPMax),
		SeenPokemon:     r.bitCount(addrs.PokedexSeen, pokedexBytes),
		CaughtPokemon:   r.bitCount(addrs.PokedexOwned, pokedexBytes),
		InBattle:        r.u8(addrs.BattleFlag) != 0,
		IsGrassTile:     grass != 0 && r.u8(addrs.StandingTile) == grass,
		FightMenuStatus: r.u8(addrs.FightMenu),
		CurrentMove:     r.u8(addrs.CurrentMove),
	}
}

type memReader struct {
	mem MemoryReader
	buf [pokedexBytes]byte
}

func (r *memReader) read(addr uint32, n int) []byte {
	b := r.buf[:n]
	for i := range b {
		b[i] = 0
	}
	if r.mem != nil {
		r.mem.ReadMemory(addr, b)
	}
	return b
}

func (r *memReader) u8(addr uint32) int {
	return int(r.read(addr, 1)[0])
}

func (r *memReader) u16(addr uint32) int {
	b := r.read(addr, 2)
	return int(b[0])<<8 | int(b[1])
}

func (r *memReader) bitCount(addr uint32, n int) int {
	total := 0
	for _, b := range r.read(addr, n) {
		total += bits.OnesCount8(b)
	}
	return total
}
