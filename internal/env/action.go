package env

import (
	"errors"
	"fmt"
	"math"
)

// Button is one hand-held console input.
type Button uint8

const (
	ButtonDown Button = iota
	ButtonLeft
	ButtonRight
	ButtonUp
	ButtonA
	ButtonB
	ButtonStart
	buttonCount // sentinel
)

func (b Button) String() string {
	switch b {
	case ButtonDown:
		return "down"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonUp:
		return "up"
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	case ButtonStart:
		return "start"
	default:
		return "unknown"
	}
}

// DefaultButtons is the base action set: four directions plus confirm and cancel.
var DefaultButtons = []Button{ButtonDown, ButtonLeft, ButtonRight, ButtonUp, ButtonA, ButtonB}

// Emulator accepts input and advances emulation.
type Emulator interface {
	Press(b Button)
	Release(b Button)
	Tick(frames int)
}

var (
	ErrNoButtons     = errors.New("env: action set is empty")
	ErrUnknownButton = errors.New("env: unknown button in action set")
	ErrBadActFreq    = errors.New("env: act_freq must be at least 1")
)

// maxAction keeps action 1.0 inside the last bin.
const maxAction = 0.99

// ActionMapper turns a continuous control scalar into one button press.
type ActionMapper struct {
	emu     Emulator
	buttons []Button
	bins    []float64
	actFreq int
}

// NewActionMapper validates the action set against the bin layout up front so a
// step can never select a button that does not exist.
func NewActionMapper(emu Emulator, buttons []Button, actFreq int) (*ActionMapper, error) {
	if len(buttons) == 0 {
		return nil, ErrNoButtons
	}
	for _, b := range buttons {
		if b >= buttonCount {
			return nil, fmt.Errorf("%w: %d", ErrUnknownButton, b)
		}
	}
	if actFreq < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadActFreq, actFreq)
	}
	return &ActionMapper{
		emu:     emu,
		buttons: append([]Button(nil), buttons...),
		bins:    linspace(0, 1, len(buttons)+1),
		actFreq: actFreq,
	}, nil
}

// Buttons returns the action set in index order.
func (m *ActionMapper) Buttons() []Button {
	return append([]Button(nil), m.buttons...)
}

// Index maps action to a button index in [0, N).
//
// i = digitize(min(action, 0.99), linspace(0, 1, N+1)) - 1
func (m *ActionMapper) Index(action float64) int {
	if math.IsNaN(action) {
		action = 0
	}
	action = math.Min(action, maxAction)
	i := digitize(action, m.bins) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(m.buttons) {
		i = len(m.buttons) - 1
	}
	return i
}

// Apply presses the selected button for actFreq ticks and records the index in mem.
func (m *ActionMapper) Apply(action float64, mem *EpisodeMemory) Button {
	i := m.Index(action)
	b := m.buttons[i]
	m.emu.Press(b)
	m.emu.Tick(m.actFreq)
	m.emu.Release(b)
	if mem != nil {
		mem.LastAction = Some(i)
	}
	return b
}

// BinCentre returns the scalar in the middle of bin i, for callers that start from
// a discrete choice.
func (m *ActionMapper) BinCentre(i int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= len(m.buttons) {
		i = len(m.buttons) - 1
	}
	return (m.bins[i] + m.bins[i+1]) / 2
}

// digitize returns the number of edges <= x, matching numpy.digitize with
// increasing bins and right=false.
func digitize(x float64, edges []float64) int {
	n := 0
	for _, e := range edges {
		if x < e {
			break
		}
		n++
	}
	return n
}

func linspace(start, stop float64, num int) []float64 {
	out := make([]float64, num)
	if num == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[num-1] = stop
	return out
}
