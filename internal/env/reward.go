package env

import "math"

// Breakdown is one step's reward split by term, plus what the novelty terms decided.
type Breakdown struct {
	NewMap     float64
	Location   float64
	Stall      float64
	Goal       float64
	Walls      float64
	Battle     float64
	BattleIdle float64
	Victory    float64
	Badge      float64
	Collection float64
	Clip       float64 // >0 clips Total to [-Clip, Clip]

	GrantedMap      bool
	GrantedLocation bool
	Won             bool
	GainedBadge     bool
}

// Total sums the terms.
func (b Breakdown) Total() float64 {
	sum := b.NewMap + b.Location + b.Stall + b.Goal + b.Walls +
		b.Battle + b.BattleIdle + b.Victory + b.Badge + b.Collection
	if b.Clip > 0 {
		sum = math.Max(-b.Clip, math.Min(b.Clip, sum))
	}
	return sum
}

// Shaper scores steps. Apart from recording novelty in the memory it is given, it
// has no side effects.
type Shaper struct {
	cfg RewardConfig
}

// NewShaper returns a shaper bound to cfg.
func NewShaper(cfg RewardConfig) *Shaper {
	return &Shaper{cfg: cfg}
}

// Score applies the terms in order; later terms read what earlier ones recorded.
func (sh *Shaper) Score(s GameSnapshot, walls WallStatus, mem *EpisodeMemory, mode Mode) Breakdown {
	c := sh.cfg
	rules := rulesFor(mode)
	b := Breakdown{Clip: c.Clip}

	// 1. map novelty
	if !mem.VisitedMaps.Has(s.Location.MapID) {
		mem.VisitedMaps.Put(s.Location.MapID)
		if !c.isNeutral(s.Location.MapID) {
			b.NewMap = c.NewMapBonus
			b.GrantedMap = true
		}
	}

	// 2. location-key novelty
	key := LocationKey(s.Location)
	if !mem.SeenLocations.Has(key) {
		mem.SeenLocations.Put(key)
		b.Location = c.NewLocationBonus
		b.GrantedLocation = true
	} else {
		b.Location = -rules.revisit(c, s)
	}

	prior := mem.Prior
	moved := prior == nil || prior.Location != s.Location

	// 3. stagnation
	if prior != nil && !moved {
		b.Stall = -rules.stall(c)
	}

	// 4. goal corridor
	if prior != nil && s.Location.MapID == c.GoalMapID && prior.Location.MapID == c.GoalMapID &&
		s.Location.Y < prior.Location.Y && b.GrantedLocation {
		dist := math.Abs(float64(s.Location.Y - c.GoalY))
		b.Goal = c.GoalBase + c.GoalScale/(dist+1)
	}

	// 5. walls
	b.Walls = -rules.walls(c, walls)

	// 6 + 7. battle progress and victory
	bt := rules.battle(c, s, mem)
	b.Battle = bt.progress
	b.BattleIdle = bt.idle
	b.Victory = bt.victory
	b.Won = bt.won

	// 8. terminal goal
	if prior != nil && s.Badges > prior.Badges {
		b.Badge = c.BadgeBonus
		b.GainedBadge = true
	}

	// 9. collection progress
	if prior != nil {
		b.Collection = c.CaughtScale*positiveDelta(s.CaughtPokemon, prior.CaughtPokemon) +
			c.SeenScale*positiveDelta(s.SeenPokemon, prior.SeenPokemon) +
			c.LevelScale*positiveDelta(s.TotalLevels(), prior.TotalLevels())
	}

	return b
}

func positiveDelta(now, before int) float64 {
	if now <= before {
		return 0
	}
	return float64(now - before)
}
