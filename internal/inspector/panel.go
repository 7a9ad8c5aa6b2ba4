package inspector

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Brock-Sense/internal/env"
)

const (
	panelMaxEntries = 60
	panelLineHeight = 15
	panelTitleH     = 18
)

// EventPanel keeps the newest panelMaxEntries engine events for on-screen display.
type EventPanel struct {
	ring []env.Event
	next int // slot the next event overwrites once the ring is full
}

// NewEventPanel creates an empty panel.
func NewEventPanel() *EventPanel {
	return &EventPanel{ring: make([]env.Event, 0, panelMaxEntries)}
}

// Emit records e, dropping the oldest event once full.
func (p *EventPanel) Emit(e env.Event) {
	if len(p.ring) < panelMaxEntries {
		p.ring = append(p.ring, e)
		return
	}
	p.ring[p.next] = e
	p.next = (p.next + 1) % panelMaxEntries
}

// Recent returns up to n of the newest events, oldest first. n <= 0 means all.
func (p *EventPanel) Recent(n int) []env.Event {
	ordered := append(append([]env.Event(nil), p.ring[p.next:]...), p.ring[:p.next]...)
	if n > 0 && n < len(ordered) {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// categoryColour tints the marker beside each entry.
func categoryColour(category string) color.RGBA {
	switch category {
	case env.CatNovelty:
		return color.RGBA{R: 90, G: 200, B: 110, A: 255}
	case env.CatBattle:
		return color.RGBA{R: 210, G: 80, B: 70, A: 255}
	default:
		return color.RGBA{R: 200, G: 180, B: 80, A: 255}
	}
}

// Draw renders the panel into the rectangle at (x, y) with size w x h.
func (p *EventPanel) Draw(screen *ebiten.Image, face text.Face, x, y, w, h int) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+h), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w), panelTitleH, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, face, "EVENTS", x+8, y+2, colourTitle)

	visible := (h - panelTitleH - 6) / panelLineHeight
	if visible <= 0 {
		return
	}
	entries := p.Recent(visible)

	const highlight = 3
	ly := y + panelTitleH + 4
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, float32(x+2), float32(ly), float32(w-4), panelLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 7, categoryColour(e.Category), false)
		drawText(screen, face, e.String(), x+12, ly, colourText)
		ly += panelLineHeight
	}
}
