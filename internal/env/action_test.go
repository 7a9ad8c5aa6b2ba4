package env

import (
	"errors"
	"math"
	"testing"
)

func TestActionMapper_IndexBins(t *testing.T) {
	m, err := NewActionMapper(newFakeConsole(frame{}), []Button{ButtonDown, ButtonLeft, ButtonRight, ButtonUp}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		action float64
		want   int
	}{
		{0, 0},
		{0.2499, 0},
		{0.25, 1}, // on an edge: the bin that starts there
		{0.5, 2},
		{0.75, 3},
		{0.99, 3},
		{1.0, 3},
		{7.5, 3},
		{-0.5, 0},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := m.Index(tc.action); got != tc.want {
			t.Errorf("Index(%v) = %d, want %d", tc.action, got, tc.want)
		}
	}
}

func TestActionMapper_IndexMonotoneAndInRange(t *testing.T) {
	m, err := NewActionMapper(newFakeConsole(frame{}), DefaultButtons, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := len(DefaultButtons)
	prev := 0
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		a := float64(i) / 1000
		idx := m.Index(a)
		if idx < 0 || idx >= n {
			t.Fatalf("Index(%v) = %d, out of [0,%d)", a, idx, n)
		}
		if idx < prev {
			t.Fatalf("Index not monotone: Index(%v) = %d after %d", a, idx, prev)
		}
		prev = idx
		seen[idx] = true
	}
	if len(seen) != n {
		t.Fatalf("expected all %d bins to be reachable, got %d", n, len(seen))
	}
}

func TestActionMapper_BinCentreRoundTrips(t *testing.T) {
	m, _ := NewActionMapper(newFakeConsole(frame{}), DefaultButtons, 1)
	for i := range DefaultButtons {
		if got := m.Index(m.BinCentre(i)); got != i {
			t.Fatalf("Index(BinCentre(%d)) = %d", i, got)
		}
	}
}

func TestActionMapper_ConstructionErrors(t *testing.T) {
	emu := newFakeConsole(frame{})
	if _, err := NewActionMapper(emu, nil, 1); !errors.Is(err, ErrNoButtons) {
		t.Fatalf("expected ErrNoButtons, got %v", err)
	}
	if _, err := NewActionMapper(emu, []Button{ButtonA, Button(42)}, 1); !errors.Is(err, ErrUnknownButton) {
		t.Fatalf("expected ErrUnknownButton, got %v", err)
	}
	if _, err := NewActionMapper(emu, DefaultButtons, 0); !errors.Is(err, ErrBadActFreq) {
		t.Fatalf("expected ErrBadActFreq, got %v", err)
	}
}

func TestActionMapper_ApplyPressTicksRelease(t *testing.T) {
	emu := newFakeConsole(frame{})
	m, err := NewActionMapper(emu, DefaultButtons, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mem := NewEpisodeMemory()
	b := m.Apply(0.7, mem)
	if b != ButtonA {
		t.Fatalf("expected button a for 0.7, got %s", b)
	}
	want := []string{"press a", "tick 24", "release a"}
	if len(emu.inputs) != len(want) {
		t.Fatalf("expected inputs %v, got %v", want, emu.inputs)
	}
	for i := range want {
		if emu.inputs[i] != want[i] {
			t.Fatalf("expected inputs %v, got %v", want, emu.inputs)
		}
	}
	if got, ok := mem.LastAction.Get(); !ok || got != 4 {
		t.Fatalf("expected last action 4, got %v", mem.LastAction)
	}
}
