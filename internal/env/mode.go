package env

// Mode classifies a step. It is recomputed from the snapshot every step and never stored.
type Mode uint8

const (
	ModeExploration Mode = iota
	ModeBattle
	modeCount // sentinel
)

func (m Mode) String() string {
	switch m {
	case ModeExploration:
		return "exploration"
	case ModeBattle:
		return "battle"
	default:
		return "unknown"
	}
}

// ModeOf derives the mode from the battle flag.
func ModeOf(s GameSnapshot) Mode {
	if s.InBattle {
		return ModeBattle
	}
	return ModeExploration
}

// Transition names a change of mode between two consecutive steps.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionEnterBattle
	TransitionExitBattle
)

// TransitionOf compares the previous step's snapshot (nil at episode start) with the mode now.
func TransitionOf(prior *GameSnapshot, now Mode) Transition {
	if prior == nil {
		return TransitionNone
	}
	before := ModeOf(*prior)
	switch {
	case before == ModeExploration && now == ModeBattle:
		return TransitionEnterBattle
	case before == ModeBattle && now == ModeExploration:
		return TransitionExitBattle
	default:
		return TransitionNone
	}
}

// battleTerms is the mode-specific part of the battle reward terms.
type battleTerms struct {
	progress float64
	idle     float64
	victory  float64
	won      bool
}

// modeRules is everything that differs between the two modes. Observation and reward
// code both look these up once per step instead of re-testing the battle flag.
type modeRules struct {
	// observe fills the base observation slots.
	observe func(s GameSnapshot, walls WallStatus, mem *EpisodeMemory) [baseSlots]float64
	// revisit is the penalty (as a positive magnitude) for stepping on a known key.
	revisit func(c RewardConfig, s GameSnapshot) float64
	// stall is the penalty magnitude for not moving.
	stall func(c RewardConfig) float64
	// walls is the penalty magnitude for closed directions.
	walls func(c RewardConfig, w WallStatus) float64
	// battle computes terms 6 and 7.
	battle func(c RewardConfig, s GameSnapshot, mem *EpisodeMemory) battleTerms
	// menu fills the fight-menu one-hot.
	menu func(s GameSnapshot, out []float64)
}

var rulesByMode = [modeCount]modeRules{
	ModeExploration: {
		observe: observeExploration,
		revisit: func(c RewardConfig, s GameSnapshot) float64 {
			if s.IsGrassTile {
				return c.GrassRevisitPenalty
			}
			return c.RevisitPenalty
		},
		stall: func(c RewardConfig) float64 { return c.StallPenaltyExplore },
		walls: func(c RewardConfig, w WallStatus) float64 {
			return c.WallPenalty * float64(w.Closed())
		},
		battle: func(RewardConfig, GameSnapshot, *EpisodeMemory) battleTerms { return battleTerms{} },
		menu:   fillSentinel,
	},
	ModeBattle: {
		observe: observeBattle,
		revisit: func(RewardConfig, GameSnapshot) float64 { return 0 },
		stall:   func(c RewardConfig) float64 { return c.StallPenaltyBattle },
		walls:   func(RewardConfig, WallStatus) float64 { return 0 },
		battle:  scoreBattle,
		menu:    fillMenuOneHot,
	},
}

func rulesFor(m Mode) modeRules {
	if m >= modeCount {
		m = ModeExploration
	}
	return rulesByMode[m]
}

// scoreBattle reads enemy HP only in battle, where it is meaningful.
func scoreBattle(c RewardConfig, s GameSnapshot, mem *EpisodeMemory) battleTerms {
	t := battleTerms{idle: -c.BattleIdlePenalty}
	prior, known := mem.PriorEnemyHP.Get()
	if !known {
		return t
	}
	if s.EnemyHP < prior {
		t.progress = float64(prior-s.EnemyHP) * c.DamageScale
	}
	if s.EnemyHP == 0 && prior != 0 {
		t.victory = c.VictoryBonus
		t.won = true
	}
	return t
}
