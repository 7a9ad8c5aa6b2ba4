package console

import (
	"github.com/Garsondee/Brock-Sense/internal/env"
)

// scenarioOptionKind controls the pass in which an option is applied.
type scenarioOptionKind int

const (
	scenarioOptWorld scenarioOptionKind = iota // world setup, applied first
	scenarioOptPlace                           // placement, applied once maps exist
)

// ScenarioOption is a builder function applied to a Console during construction.
type ScenarioOption struct {
	kind scenarioOptionKind
	fn   func(*Console)
}

// WithSeed sets the RNG seed for encounters.
func WithSeed(seed int64) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.seed = seed
	}}
}

// WithMaps replaces the stock world.
func WithMaps(defs ...MapDef) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.maps = decodeMaps(defs)
	}}
}

// WithEncounterRate sets the chance that a grass step starts a wild battle.
func WithEncounterRate(p float64) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.encounterRate = p
	}}
}

// WithLeader sets the gym leader's HP and per-round damage.
func WithLeader(hp, power int) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.leaderHP = hp
		c.leaderPower = power
	}}
}

// WithWild sets wild encounter HP and per-round damage.
func WithWild(hp, power int) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.wildHP = hp
		c.wildPower = power
	}}
}

// WithAddressMap writes WRAM using a different layout.
func WithAddressMap(addrs env.AddressMap) ScenarioOption {
	return ScenarioOption{scenarioOptWorld, func(c *Console) {
		c.addrs = addrs
	}}
}

// WithStart places the player at (x, y) on mapID at boot and after blackouts.
func WithStart(mapID, x, y int) ScenarioOption {
	return ScenarioOption{scenarioOptPlace, func(c *Console) {
		c.start = position{mapID: mapID, x: x, y: y}
	}}
}

// WithPartyLevel sets the starting level of the single party member.
func WithPartyLevel(level int) ScenarioOption {
	return ScenarioOption{scenarioOptPlace, func(c *Console) {
		c.startLevel = level
	}}
}

// NewScenario builds a console in two ordered passes (world, then placement) and
// boots it.
func NewScenario(opts ...ScenarioOption) *Console {
	c := &Console{
		addrs:         env.RedAddressMap,
		maps:          decodeMaps(StockMaps),
		start:         position{mapID: MapPallet, x: 4, y: 6},
		startLevel:    5,
		seed:          1,
		encounterRate: 0.1,
		leaderHP:      40,
		leaderPower:   3,
		wildHP:        12,
		wildPower:     2,
	}
	for _, o := range opts {
		if o.kind == scenarioOptWorld {
			o.fn(c)
		}
	}
	for _, o := range opts {
		if o.kind == scenarioOptPlace {
			o.fn(c)
		}
	}
	c.Restart()
	return c
}

func decodeMaps(defs []MapDef) map[int]*TileMap {
	maps := make(map[int]*TileMap, len(defs))
	for _, d := range defs {
		maps[d.ID] = NewTileMap(d)
	}
	return maps
}
