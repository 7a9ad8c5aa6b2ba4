// Package env turns raw hand-held console memory into observations, rewards and
// episode boundaries for a reinforcement-learning agent.
package env

import "fmt"

// Console is the emulator collaborator: memory reads, the walkability viewport
// around the player, and button/tick control.
type Console interface {
	MemoryReader
	Emulator
	WalkableMatrix() [][]int
}

// Restarter is implemented by consoles that can return to the episode start state.
type Restarter interface {
	Restart()
}

// StepResult is everything one step produces.
type StepResult struct {
	Observation []float64
	Reward      float64
	Breakdown   Breakdown
	Snapshot    GameSnapshot
	Walls       WallStatus
	Grid        [][]int
	Mode        Mode
	Button      Button
	Done        bool
	Truncated   bool
}

// Engine runs the per-step pipeline. It is not safe for concurrent use; callers
// serialise steps.
type Engine struct {
	console Console
	cfg     Config
	addrs   AddressMap
	actions *ActionMapper
	shaper  *Shaper
	policy  TerminationPolicy
	mem     *EpisodeMemory
	sink    EventSink
	episode int
}

// Option customises an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	buttons []Button
	addrs   AddressMap
	sink    EventSink
}

// WithButtons replaces the default action set.
func WithButtons(buttons ...Button) Option {
	return func(o *engineOptions) {
		o.buttons = buttons
	}
}

// WithAddressMap replaces the default WRAM layout.
func WithAddressMap(addrs AddressMap) Option {
	return func(o *engineOptions) {
		o.addrs = addrs
	}
}

// WithEventSink routes engine events to sink.
func WithEventSink(sink EventSink) Option {
	return func(o *engineOptions) {
		o.sink = sink
	}
}

// New builds an engine. Configuration problems are reported here, never at step time.
func New(console Console, cfg Config, opts ...Option) (*Engine, error) {
	if console == nil {
		return nil, fmt.Errorf("env: nil console")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := engineOptions{
		buttons: DefaultButtons,
		addrs:   RedAddressMap,
		sink:    discardSink{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = discardSink{}
	}
	actions, err := NewActionMapper(console, o.buttons, cfg.ActFreq)
	if err != nil {
		return nil, fmt.Errorf("env: action mapper: %w", err)
	}
	return &Engine{
		console: console,
		cfg:     cfg,
		addrs:   o.addrs,
		actions: actions,
		shaper:  NewShaper(cfg.Reward),
		policy:  TerminationPolicy{StepBudget: cfg.StepBudget, StallLimit: cfg.StallLimit},
		mem:     NewEpisodeMemory(),
		sink:    o.sink,
	}, nil
}

// Memory exposes the episode memory for inspection.
func (e *Engine) Memory() *EpisodeMemory {
	return e.mem
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Actions returns the action mapper.
func (e *Engine) Actions() *ActionMapper {
	return e.actions
}

// Episode returns the current episode number, starting at 1 after the first Reset.
func (e *Engine) Episode() int {
	return e.episode
}

// ObservationLen is the fixed observation length for this configuration.
func (e *Engine) ObservationLen() int {
	return e.cfg.Observation.Len()
}

// Reset starts a new episode and returns the initial observation.
func (e *Engine) Reset() []float64 {
	if r, ok := e.console.(Restarter); ok {
		r.Restart()
	}
	e.mem.Reset()
	e.episode++
	e.emit(CatEpisode, KeyReset, "memory cleared", 0)

	snap, grid, walls := e.sense()
	mode := ModeOf(snap)
	obs := BuildObservation(e.cfg.Observation, snap, walls, grid, e.mem, mode)
	e.mem.Observe(snap, walls, mode)
	return obs
}

// Step applies action and runs sense → observe → score → terminate → remember.
func (e *Engine) Step(action float64) StepResult {
	button := e.actions.Apply(action, e.mem)
	e.mem.StepCount++

	snap, grid, walls := e.sense()
	mode := ModeOf(snap)
	switch TransitionOf(e.mem.Prior, mode) {
	case TransitionEnterBattle:
		e.emit(CatBattle, KeyEnter, fmt.Sprintf("enemy_hp %d/%d", snap.EnemyHP, snap.EnemyHPMax), float64(snap.EnemyHP))
	case TransitionExitBattle:
		e.mem.PriorEnemyHP = None
		e.emit(CatBattle, KeyExit, fmt.Sprintf("map %d", snap.Location.MapID), 0)
	}

	obs := BuildObservation(e.cfg.Observation, snap, walls, grid, e.mem, mode)
	priorHP := e.mem.PriorEnemyHP
	bd := e.shaper.Score(snap, walls, e.mem, mode)
	e.emitScore(snap, bd, priorHP)
	e.mem.TrackStall(snap)

	res := StepResult{
		Observation: obs,
		Reward:      bd.Total(),
		Breakdown:   bd,
		Snapshot:    snap,
		Walls:       walls,
		Grid:        grid,
		Mode:        mode,
		Button:      button,
		Done:        e.policy.IsDone(snap, e.mem),
	}

	step := e.mem.StepCount
	res.Truncated = e.policy.Truncate(e.mem)
	switch {
	case res.Truncated:
		e.emitAt(step, CatEpisode, KeyTruncated, fmt.Sprintf("after %d steps", step), float64(step))
		if res.Done {
			e.emitAt(step, CatEpisode, KeyDone, fmt.Sprintf("badges %d", snap.Badges), float64(snap.Badges))
		}
	case res.Done:
		e.emitAt(step, CatEpisode, KeyDone, fmt.Sprintf("badges %d", snap.Badges), float64(snap.Badges))
		e.mem.Reset()
	default:
		e.mem.Observe(snap, walls, mode)
	}
	return res
}

func (e *Engine) sense() (GameSnapshot, [][]int, WallStatus) {
	snap := ReadSnapshot(e.console, e.addrs)
	grid := e.console.WalkableMatrix()
	return snap, grid, SenseWalls(grid, e.cfg.AgentCell)
}

func (e *Engine) emitScore(s GameSnapshot, bd Breakdown, priorHP OptInt) {
	if bd.GrantedMap {
		e.emit(CatNovelty, KeyMap, fmt.Sprintf("map %d", s.Location.MapID), bd.NewMap)
	}
	if bd.GrantedLocation && e.cfg.Verbose {
		e.emit(CatNovelty, KeyLocation, LocationKey(s.Location), bd.Location)
	}
	if bd.Won {
		e.emit(CatBattle, KeyVictory, fmt.Sprintf("enemy_hp %s → 0", priorHP), bd.Victory)
	}
}

func (e *Engine) emit(category, key, value string, num float64) {
	e.emitAt(e.mem.StepCount, category, key, value, num)
}

func (e *Engine) emitAt(step int, category, key, value string, num float64) {
	e.sink.Emit(Event{
		Episode:  e.episode,
		Step:     step,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	})
}
