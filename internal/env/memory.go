package env

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Sentinel is how an unset OptInt is encoded into observation vectors.
const Sentinel = -1.0

// OptInt is an int that may be absent. Each field owns its own notion of absence
// instead of sharing -1.
type OptInt struct {
	value int
	ok    bool
}

// None is the absent OptInt.
var None = OptInt{}

// Some wraps a present value.
func Some(v int) OptInt {
	return OptInt{value: v, ok: true}
}

// Get returns the value and whether it is present.
func (o OptInt) Get() (int, bool) {
	return o.value, o.ok
}

// Known reports whether a value is present.
func (o OptInt) Known() bool {
	return o.ok
}

// OrSentinel encodes the value for an observation vector.
func (o OptInt) OrSentinel() float64 {
	if !o.ok {
		return Sentinel
	}
	return float64(o.value)
}

func (o OptInt) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprintf("%d", o.value)
}

// LocationKey serialises a location for seen-set membership.
func LocationKey(l Location) string {
	return fmt.Sprintf("x:%d,y:%d,m:%d", l.X, l.Y, l.MapID)
}

// EpisodeMemory is the per-episode state owned by one engine.
type EpisodeMemory struct {
	VisitedMaps   mapset.Set[int]
	SeenLocations mapset.Set[string]
	Prior         *GameSnapshot
	PriorEnemyHP  OptInt
	LastAction    OptInt
	LastWalls     *WallStatus
	StepCount     int
	StallCount    int // consecutive steps without a position change
}

// NewEpisodeMemory returns an empty memory.
func NewEpisodeMemory() *EpisodeMemory {
	m := &EpisodeMemory{}
	m.Reset()
	return m
}

// Reset purges everything back to the start-of-episode state. It is the only place
// the novelty sets shrink.
func (m *EpisodeMemory) Reset() {
	m.VisitedMaps = mapset.New[int]()
	m.SeenLocations = mapset.New[string]()
	m.Prior = nil
	m.PriorEnemyHP = None
	m.LastAction = None
	m.LastWalls = nil
	m.StepCount = 0
	m.StallCount = 0
}

// TrackStall counts s against the prior snapshot. It runs before termination so the
// stall limit sees the current step.
func (m *EpisodeMemory) TrackStall(s GameSnapshot) {
	if m.Prior != nil && m.Prior.Location == s.Location {
		m.StallCount++
	} else {
		m.StallCount = 0
	}
}

// Observe records end-of-step bookkeeping for s.
func (m *EpisodeMemory) Observe(s GameSnapshot, walls WallStatus, mode Mode) {
	if mode == ModeBattle {
		m.PriorEnemyHP = Some(s.EnemyHP)
	} else {
		m.PriorEnemyHP = None
	}
	snap := s
	m.Prior = &snap
	w := walls
	m.LastWalls = &w
}
