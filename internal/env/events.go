package env

import (
	"fmt"
	"strings"
)

// Event categories and keys emitted by the engine.
const (
	CatNovelty = "novelty"
	CatBattle  = "battle"
	CatEpisode = "episode"

	KeyMap       = "map"
	KeyLocation  = "location"
	KeyEnter     = "enter"
	KeyExit      = "exit"
	KeyVictory   = "victory"
	KeyDone      = "done"
	KeyTruncated = "truncated"
	KeyReset     = "reset"
)

// Event is one structured record from the engine.
type Event struct {
	Episode  int
	Step     int
	Category string  // novelty, battle, episode
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the event as a fixed-width log line.
//
//	[E=01 S=0042] battle    victory          enemy_hp 20 → 0
func (e Event) String() string {
	return fmt.Sprintf("[E=%02d S=%04d] %-9s %-16s %s",
		e.Episode, e.Step, e.Category, e.Key, e.Value)
}

// EventSink consumes engine events.
type EventSink interface {
	Emit(e Event)
}

// EventLog is an unbounded, filterable EventSink.
type EventLog struct {
	entries []Event
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Emit records e.
func (l *EventLog) Emit(e Event) {
	l.entries = append(l.entries, e)
}

// Entries returns all recorded events.
func (l *EventLog) Entries() []Event {
	return l.entries
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.entries)
}

// Filter returns events matching category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many events match category and key.
func (l *EventLog) CountCategory(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent event matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether an event matching category and key has valueSubstr in its value.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.Filter(category, key) {
		if strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the full log, one event per line.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MultiSink fans events out to several sinks.
type MultiSink []EventSink

// Emit forwards e to every sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

type discardSink struct{}

func (discardSink) Emit(Event) {}
