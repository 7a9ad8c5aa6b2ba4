package inspector

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Brock-Sense/internal/env"
)

func TestEventPanel_RingBufferKeepsNewest(t *testing.T) {
	p := NewEventPanel()
	for i := 0; i < panelMaxEntries+5; i++ {
		p.Emit(env.Event{Step: i})
	}
	recent := p.Recent(0)
	if len(recent) != panelMaxEntries {
		t.Fatalf("expected %d entries, got %d", panelMaxEntries, len(recent))
	}
	if recent[0].Step != 5 || recent[len(recent)-1].Step != panelMaxEntries+4 {
		t.Fatalf("expected steps 5..%d, got %d..%d", panelMaxEntries+4, recent[0].Step, recent[len(recent)-1].Step)
	}
	tail := p.Recent(3)
	if len(tail) != 3 || tail[0].Step != panelMaxEntries+2 || tail[2].Step != panelMaxEntries+4 {
		t.Fatalf("expected the three newest events, got %+v", tail)
	}
}

func TestEventPanel_RecentBeforeFull(t *testing.T) {
	p := NewEventPanel()
	p.Emit(env.Event{Step: 1})
	p.Emit(env.Event{Step: 2})
	if got := p.Recent(5); len(got) != 2 || got[0].Step != 1 || got[1].Step != 2 {
		t.Fatalf("expected steps 1,2, got %+v", got)
	}
}

func TestFormatObservation_Wraps(t *testing.T) {
	lines := formatObservation([]float64{1, -1, 0.25, 3, 4}, 2)
	if len(lines) != 3 || lines[0] != "1 -1" || lines[2] != "4" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestFormatBreakdown_SkipsZeroTerms(t *testing.T) {
	lines := formatBreakdown(env.Breakdown{NewMap: 20, Walls: -0.04})
	if len(lines) != 2 || !strings.Contains(lines[0], "new_map") || !strings.Contains(lines[1], "-0.040") {
		t.Fatalf("unexpected lines %q", lines)
	}
	if lines := formatBreakdown(env.Breakdown{}); len(lines) != 1 {
		t.Fatalf("expected a placeholder line, got %q", lines)
	}
}

func TestInspector_ButtonCommandsDriveEngine(t *testing.T) {
	cfg := env.DefaultConfig()
	cfg.ActFreq = 1
	in, err := New(cfg, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.apply(command{kind: cmdButton, button: env.ButtonRight})
	if !in.hasStep || in.last.Button != env.ButtonRight {
		t.Fatalf("expected a right step, got %+v", in.last.Button)
	}
	if in.last.Snapshot.Location.X != 5 {
		t.Fatalf("expected the player at x=5, got %d", in.last.Snapshot.Location.X)
	}
	in.apply(command{kind: cmdButton, button: env.ButtonStart})
	if !strings.Contains(in.status, "not in the action set") {
		t.Fatalf("expected a status for an unbound button, got %q", in.status)
	}

	in.apply(command{kind: cmdReset})
	if in.eng.Episode() != 2 || in.hasStep || in.ret != 0 {
		t.Fatalf("expected a fresh episode 2, got episode %d", in.eng.Episode())
	}
}

func TestInspector_CopyWritesEventLog(t *testing.T) {
	in, err := New(env.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var copied string
	in.copyText = func(s string) error {
		copied = s
		return nil
	}
	in.apply(command{kind: cmdCopy})
	if !strings.Contains(copied, "reset") || !strings.HasPrefix(in.status, "copied") {
		t.Fatalf("expected the event log copied, got %q (status %q)", copied, in.status)
	}

	in.copyText = func(string) error { return errors.New("no clipboard") }
	in.apply(command{kind: cmdCopy})
	if !strings.Contains(in.status, "no clipboard") {
		t.Fatalf("expected the copy error in the status, got %q", in.status)
	}
}

func TestInspector_AutoplayToggles(t *testing.T) {
	in, err := New(env.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.apply(command{kind: cmdAutoplay})
	if !in.autoplay {
		t.Fatal("expected autoplay on")
	}
	in.apply(command{kind: cmdRandom})
	if !in.hasStep || len(in.obs) != in.eng.ObservationLen() {
		t.Fatal("expected a random step with a full observation")
	}
}
