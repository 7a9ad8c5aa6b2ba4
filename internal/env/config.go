package env

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RewardConfig holds the reward-shaping constants. Map ids and magnitudes are tuning
// values, so they live here rather than in code.
type RewardConfig struct {
	NewMapBonus   float64 `yaml:"new_map_bonus"`
	NeutralMapIDs []int   `yaml:"neutral_map_ids"`

	NewLocationBonus    float64 `yaml:"new_location_bonus"`
	RevisitPenalty      float64 `yaml:"revisit_penalty"`
	GrassRevisitPenalty float64 `yaml:"grass_revisit_penalty"`

	StallPenaltyExplore float64 `yaml:"stall_penalty_explore"`
	StallPenaltyBattle  float64 `yaml:"stall_penalty_battle"`

	GoalMapID int     `yaml:"goal_map_id"`
	GoalY     int     `yaml:"goal_y"`
	GoalBase  float64 `yaml:"goal_base"`
	GoalScale float64 `yaml:"goal_scale"`

	WallPenalty float64 `yaml:"wall_penalty"`

	DamageScale       float64 `yaml:"damage_scale"`
	BattleIdlePenalty float64 `yaml:"battle_idle_penalty"`
	VictoryBonus      float64 `yaml:"victory_bonus"`

	BadgeBonus float64 `yaml:"badge_bonus"`

	CaughtScale float64 `yaml:"caught_scale"`
	SeenScale   float64 `yaml:"seen_scale"`
	LevelScale  float64 `yaml:"level_scale"`

	// Clip bounds the total to [-Clip, Clip] when positive.
	Clip float64 `yaml:"clip"`
}

// DefaultRewardConfig is the Brock profile.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		NewMapBonus:         20,
		NeutralMapIDs:       []int{40},
		NewLocationBonus:    0.5,
		RevisitPenalty:      0.01,
		GrassRevisitPenalty: 0.05,
		StallPenaltyExplore: 0.05,
		StallPenaltyBattle:  0.01,
		GoalMapID:           12,
		GoalY:               0,
		GoalBase:            1,
		GoalScale:           5,
		WallPenalty:         0.02,
		DamageScale:         0.5,
		BattleIdlePenalty:   0.05,
		VictoryBonus:        50,
		BadgeBonus:          100,
	}
}

func (c RewardConfig) isNeutral(mapID int) bool {
	for _, id := range c.NeutralMapIDs {
		if id == mapID {
			return true
		}
	}
	return false
}

// Config is everything the engine consumes at construction time.
type Config struct {
	ActFreq    int  `yaml:"act_freq"`
	StepBudget int  `yaml:"step_budget"`
	StallLimit int  `yaml:"stall_limit"` // 0 disables stall truncation
	Headless   bool `yaml:"headless"`
	Verbose    bool `yaml:"verbose"` // also emit per-location novelty events

	AgentCell   Cell              `yaml:"agent_cell"`
	Observation ObservationLayout `yaml:"observation"`
	Reward      RewardConfig      `yaml:"reward"`
}

var ErrBadStepBudget = errors.New("env: step_budget must be at least 1")

// ErrAgentOutsideGrid means agent_cell does not lie inside the observation grid.
var ErrAgentOutsideGrid = errors.New("env: agent_cell is outside the grid")

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ActFreq:     24,
		StepBudget:  1000,
		Headless:    true,
		AgentCell:   DefaultAgentCell,
		Observation: DefaultObservationLayout,
		Reward:      DefaultRewardConfig(),
	}
}

// ParseConfig decodes YAML over the defaults, so keys left out keep their default.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML profile from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.ActFreq < 1 {
		return fmt.Errorf("%w: got %d", ErrBadActFreq, c.ActFreq)
	}
	if c.StepBudget < 1 {
		return fmt.Errorf("%w: got %d", ErrBadStepBudget, c.StepBudget)
	}
	if c.StallLimit < 0 {
		return fmt.Errorf("env: stall_limit must not be negative, got %d", c.StallLimit)
	}
	if c.Observation.Rich && c.Observation.gridCells() == 0 {
		return fmt.Errorf("env: rich observation needs a positive grid size, got %dx%d",
			c.Observation.GridRows, c.Observation.GridCols)
	}
	a := c.AgentCell
	if a.Row < 0 || a.Row >= c.Observation.GridRows || a.Col < 0 || a.Col >= c.Observation.GridCols {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrAgentOutsideGrid,
			a.Row, a.Col, c.Observation.GridRows, c.Observation.GridCols)
	}
	return nil
}
