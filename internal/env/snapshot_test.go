package env

import "testing"

type byteReader map[uint32]byte

func (m byteReader) ReadMemory(addr uint32, buf []byte) uint32 {
	for i := range buf {
		buf[i] = m[addr+uint32(i)]
	}
	return uint32(len(buf))
}

// shortReader fills nothing, like a console that failed the read.
type shortReader struct{}

func (shortReader) ReadMemory(uint32, []byte) uint32 { return 0 }

func TestReadSnapshot_DecodesFields(t *testing.T) {
	a := RedAddressMap
	mem := byteReader{
		a.PlayerX:           7,
		a.PlayerY:           3,
		a.MapID:             12,
		a.Badges:            0b0000_0101,
		a.PartyCount:        2,
		a.PartyLevels[0]:    9,
		a.PartyLevels[1]:    4,
		a.PartyHP[0]:        0x01,
		a.PartyHP[0] + 1:    0x2C,
		a.PartyMaxHP[0]:     0x01,
		a.PartyMaxHP[0] + 1: 0x40,
		a.EnemyHP:           0x00,
		a.EnemyHP + 1:       0x1E,
		a.EnemyHPMax + 1:    0x28,
		a.BattleFlag:        2,
		a.FightMenu:         3,
		a.CurrentMove:       0x21,
		a.PokedexSeen:       0xFF,
		a.PokedexSeen + 18:  0x01,
		a.PokedexOwned + 2:  0x03,
		a.StandingTile:      0x52,
		a.GrassTile:         0x52,
	}
	s := ReadSnapshot(mem, a)

	if s.Location != (Location{X: 7, Y: 3, MapID: 12}) {
		t.Fatalf("expected location (7,3,12), got %+v", s.Location)
	}
	if s.Badges != 2 {
		t.Fatalf("expected 2 badges from bitmask, got %d", s.Badges)
	}
	if len(s.Levels) != 2 || s.TotalLevels() != 13 {
		t.Fatalf("expected levels [9 4], got %v", s.Levels)
	}
	if s.PartyHP.Current[0] != 300 || s.PartyHP.Max[0] != 320 {
		t.Fatalf("expected big-endian HP 300/320, got %d/%d", s.PartyHP.Current[0], s.PartyHP.Max[0])
	}
	if s.EnemyHP != 30 || s.EnemyHPMax != 40 {
		t.Fatalf("expected enemy HP 30/40, got %d/%d", s.EnemyHP, s.EnemyHPMax)
	}
	if !s.InBattle {
		t.Fatal("non-zero battle flag should read as in battle")
	}
	if s.FightMenuStatus != 3 || s.CurrentMove != 0x21 {
		t.Fatalf("expected menu 3 move 0x21, got %d %#x", s.FightMenuStatus, s.CurrentMove)
	}
	if s.SeenPokemon != 9 || s.CaughtPokemon != 2 {
		t.Fatalf("expected seen 9 caught 2, got %d %d", s.SeenPokemon, s.CaughtPokemon)
	}
	if !s.IsGrassTile {
		t.Fatal("standing tile equal to the grass tile should read as grass")
	}
}

func TestReadSnapshot_GrassNeedsMatchingTile(t *testing.T) {
	a := RedAddressMap
	if s := ReadSnapshot(byteReader{a.StandingTile: 0x2C, a.GrassTile: 0x52}, a); s.IsGrassTile {
		t.Fatal("different standing tile should not be grass")
	}
	// A map without grass stores tile 0, which must never match.
	if s := ReadSnapshot(byteReader{}, a); s.IsGrassTile {
		t.Fatal("zero grass tile should not be grass")
	}
}

func TestReadSnapshot_PartyCountClamped(t *testing.T) {
	a := RedAddressMap
	s := ReadSnapshot(byteReader{a.PartyCount: 0xFF}, a)
	if len(s.Levels) != maxPartySize {
		t.Fatalf("expected party clamped to %d, got %d", maxPartySize, len(s.Levels))
	}
}

func TestReadSnapshot_ShortReadsAreZero(t *testing.T) {
	s := ReadSnapshot(shortReader{}, RedAddressMap)
	if s.Location != (Location{}) || s.Badges != 0 || s.InBattle || len(s.Levels) != 0 {
		t.Fatalf("expected zero snapshot, got %+v", s)
	}
	if s := ReadSnapshot(nil, RedAddressMap); s.EnemyHP != 0 {
		t.Fatalf("expected zero snapshot from nil reader, got %+v", s)
	}
}
