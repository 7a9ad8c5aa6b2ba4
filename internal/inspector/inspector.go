// Package inspector is a live ebiten window over the engine: it shows what the
// agent perceives (viewport, walls, observation vector) and how each step was scored.
package inspector

import (
	"bytes"
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Garsondee/Brock-Sense/internal/console"
	"github.com/Garsondee/Brock-Sense/internal/env"
)

const (
	screenW = 1280
	screenH = 720

	mapTile    = 22
	viewTile   = 26
	mapX       = 16
	mapY       = 40
	viewX      = 16
	viewY      = 420
	infoX      = 330
	infoY      = 40
	panelX     = 820
	lineHeight = 16
	fontSize   = 12

	autoplayEvery = 6 // frames between autoplay steps
)

var (
	colourText  = color.RGBA{R: 210, G: 215, B: 210, A: 255}
	colourTitle = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colourDim   = color.RGBA{R: 130, G: 135, B: 130, A: 255}

	tileColours = map[console.TileKind]color.RGBA{
		console.TileWall:   {R: 45, G: 50, B: 45, A: 255},
		console.TileFloor:  {R: 140, G: 130, B: 100, A: 255},
		console.TileGrass:  {R: 60, G: 140, B: 60, A: 255},
		console.TileWarp:   {R: 80, G: 110, B: 200, A: 255},
		console.TileLeader: {R: 200, G: 70, B: 70, A: 255},
	}
)

// keyBindings maps keys to console buttons.
var keyBindings = []struct {
	key    ebiten.Key
	button env.Button
}{
	{ebiten.KeyArrowDown, env.ButtonDown},
	{ebiten.KeyArrowLeft, env.ButtonLeft},
	{ebiten.KeyArrowRight, env.ButtonRight},
	{ebiten.KeyArrowUp, env.ButtonUp},
	{ebiten.KeyZ, env.ButtonA},
	{ebiten.KeyX, env.ButtonB},
}

type commandKind uint8

const (
	cmdNone commandKind = iota
	cmdButton
	cmdRandom
	cmdAutoplay
	cmdReset
	cmdCopy
)

type command struct {
	kind   commandKind
	button env.Button
}

// Inspector implements ebiten.Game.
type Inspector struct {
	eng    *env.Engine
	con    *console.Console
	events *env.EventLog
	panel  *EventPanel
	rng    *rand.Rand
	face   text.Face

	obs      []float64
	last     env.StepResult
	hasStep  bool
	grid     [][]int
	walls    env.WallStatus
	ret      float64
	autoplay bool
	frame    int
	status   string

	copyText func(string) error
}

// New builds an inspector over a fresh simulated console.
func New(cfg env.Config, seed int64) (*Inspector, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	con := console.NewScenario(console.WithSeed(seed))
	events := env.NewEventLog()
	panel := NewEventPanel()
	eng, err := env.New(con, cfg, env.WithEventSink(env.MultiSink{events, panel}))
	if err != nil {
		return nil, err
	}
	in := &Inspector{
		eng:      eng,
		con:      con,
		events:   events,
		panel:    panel,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- reproducible sessions
		face:     &text.GoTextFace{Source: src, Size: fontSize},
		copyText: clipboard.WriteAll,
	}
	in.reset()
	return in, nil
}

func (in *Inspector) reset() {
	in.obs = in.eng.Reset()
	in.grid = in.con.WalkableMatrix()
	in.walls = env.SenseWalls(in.grid, in.eng.Config().AgentCell)
	in.hasStep = false
	in.ret = 0
}

// Update reads input and advances the engine.
func (in *Inspector) Update() error {
	in.frame++
	in.apply(readInput())
	if in.autoplay && in.frame%autoplayEvery == 0 {
		in.apply(command{kind: cmdRandom})
	}
	return nil
}

func readInput() command {
	for _, kb := range keyBindings {
		if inpututil.IsKeyJustPressed(kb.key) {
			return command{kind: cmdButton, button: kb.button}
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return command{kind: cmdRandom}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		return command{kind: cmdAutoplay}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return command{kind: cmdReset}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		return command{kind: cmdCopy}
	}
	return command{}
}

func (in *Inspector) apply(c command) {
	switch c.kind {
	case cmdButton:
		if a, ok := actionFor(in.eng.Actions(), c.button); ok {
			in.step(a)
		} else {
			in.status = fmt.Sprintf("%s is not in the action set", c.button)
		}
	case cmdRandom:
		in.step(in.rng.Float64())
	case cmdAutoplay:
		in.autoplay = !in.autoplay
	case cmdReset:
		in.reset()
		in.status = "reset"
	case cmdCopy:
		if err := in.copyText(in.events.Format()); err != nil {
			in.status = "copy failed: " + err.Error()
		} else {
			in.status = fmt.Sprintf("copied %d events", in.events.Len())
		}
	}
}

// actionFor returns the control scalar that selects b, if b is in the action set.
func actionFor(m *env.ActionMapper, b env.Button) (float64, bool) {
	for i, cand := range m.Buttons() {
		if cand == b {
			return m.BinCentre(i), true
		}
	}
	return 0, false
}

func (in *Inspector) step(action float64) {
	res := in.eng.Step(action)
	in.last = res
	in.hasStep = true
	in.obs = res.Observation
	in.grid = res.Grid
	in.walls = res.Walls
	in.ret += res.Reward
	switch {
	case res.Done:
		in.status = fmt.Sprintf("badge earned, return %.2f", in.ret)
		in.reset()
	case res.Truncated:
		in.status = fmt.Sprintf("truncated, return %.2f", in.ret)
		in.reset()
	}
}

// Draw renders the map, the agent's viewport and the signal panels.
func (in *Inspector) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	in.drawMap(screen)
	in.drawViewport(screen)
	in.drawInfo(screen)
	in.panel.Draw(screen, in.face, panelX, 0, screenW-panelX, screenH)
	drawText(screen, in.face, "arrows/Z/X buttons  Space random  P autoplay  R reset  C copy log", 16, screenH-22, colourDim)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()), panelX-70, 4)
}

func (in *Inspector) drawMap(screen *ebiten.Image) {
	snap := env.ReadSnapshot(in.con, env.RedAddressMap)
	tm := in.con.TileMap(snap.Location.MapID)
	drawText(screen, in.face, fmt.Sprintf("%s (map %d)", in.con.MapName(snap.Location.MapID), snap.Location.MapID), mapX, mapY-22, colourTitle)
	if tm == nil {
		return
	}
	for y := 0; y < tm.Rows(); y++ {
		for x := 0; x < tm.Cols(); x++ {
			c := tileColours[tm.TileAt(x, y)]
			vector.FillRect(screen, float32(mapX+x*mapTile), float32(mapY+y*mapTile), mapTile-1, mapTile-1, c, false)
		}
	}
	px := float32(mapX + snap.Location.X*mapTile + mapTile/2)
	py := float32(mapY + snap.Location.Y*mapTile + mapTile/2)
	vector.FillCircle(screen, px, py, mapTile/3, color.RGBA{R: 250, G: 240, B: 90, A: 255}, false)
}

func (in *Inspector) drawViewport(screen *ebiten.Image) {
	drawText(screen, in.face, "VIEWPORT", viewX, viewY-22, colourTitle)
	agent := in.eng.Config().AgentCell
	for r, row := range in.grid {
		for c, v := range row {
			col := color.RGBA{R: 45, G: 50, B: 45, A: 255}
			if v == env.Walkable {
				col = color.RGBA{R: 140, G: 130, B: 100, A: 255}
			}
			vector.FillRect(screen, float32(viewX+c*viewTile), float32(viewY+r*viewTile), viewTile-1, viewTile-1, col, false)
		}
	}
	ax := float32(viewX + agent.Col*viewTile)
	ay := float32(viewY + agent.Row*viewTile)
	vector.StrokeRect(screen, ax, ay, viewTile-1, viewTile-1, 2, color.RGBA{R: 250, G: 240, B: 90, A: 255}, false)
	drawText(screen, in.face, fmt.Sprintf("walls %s", formatWalls(in.walls)), viewX, viewY+len(in.grid)*viewTile+4, colourText)
}

func (in *Inspector) drawInfo(screen *ebiten.Image) {
	mem := in.eng.Memory()
	lines := []string{
		fmt.Sprintf("episode %d  step %d  return %.2f", in.eng.Episode(), mem.StepCount, in.ret),
		fmt.Sprintf("visited maps %d  seen locations %d  stall %d", mem.VisitedMaps.Size(), mem.SeenLocations.Size(), mem.StallCount),
		fmt.Sprintf("last action %s  prior enemy hp %s  autoplay %v", mem.LastAction, mem.PriorEnemyHP, in.autoplay),
	}
	if in.hasStep {
		s := in.last.Snapshot
		lines = append(lines,
			fmt.Sprintf("mode %s  button %s  badges %d  levels %d", in.last.Mode, in.last.Button, s.Badges, s.TotalLevels()),
			fmt.Sprintf("enemy %d/%d  menu %d  grass %v", s.EnemyHP, s.EnemyHPMax, s.FightMenuStatus, s.IsGrassTile),
			"",
			fmt.Sprintf("reward %.3f", in.last.Reward),
		)
		lines = append(lines, formatBreakdown(in.last.Breakdown)...)
	}
	lines = append(lines, "", fmt.Sprintf("observation (%d)", len(in.obs)))
	lines = append(lines, formatObservation(in.obs, 11)...)
	if in.status != "" {
		lines = append(lines, "", in.status)
	}

	drawText(screen, in.face, "SIGNALS", infoX, infoY-22, colourTitle)
	for i, l := range lines {
		drawText(screen, in.face, l, infoX, infoY+i*lineHeight, colourText)
	}
}

// Layout fixes the logical screen size.
func (in *Inspector) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func drawText(screen *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func formatWalls(w env.WallStatus) string {
	mark := func(open bool) string {
		if open {
			return "open"
		}
		return "wall"
	}
	return fmt.Sprintf("up=%s down=%s left=%s right=%s", mark(w.Up), mark(w.Down), mark(w.Left), mark(w.Right))
}

// formatBreakdown lists the non-zero reward terms, one per line.
func formatBreakdown(b env.Breakdown) []string {
	terms := []struct {
		name string
		v    float64
	}{
		{"new_map", b.NewMap},
		{"location", b.Location},
		{"stall", b.Stall},
		{"goal", b.Goal},
		{"walls", b.Walls},
		{"battle", b.Battle},
		{"battle_idle", b.BattleIdle},
		{"victory", b.Victory},
		{"badge", b.Badge},
		{"collection", b.Collection},
	}
	var out []string
	for _, t := range terms {
		if t.v != 0 {
			out = append(out, fmt.Sprintf("  %-12s %+.3f", t.name, t.v))
		}
	}
	if len(out) == 0 {
		out = append(out, "  (no terms)")
	}
	return out
}

// formatObservation wraps the vector into lines of perLine values.
func formatObservation(obs []float64, perLine int) []string {
	if perLine < 1 {
		perLine = 1
	}
	var out []string
	for i := 0; i < len(obs); i += perLine {
		end := i + perLine
		if end > len(obs) {
			end = len(obs)
		}
		parts := make([]string, 0, end-i)
		for _, v := range obs[i:end] {
			parts = append(parts, fmt.Sprintf("%g", v))
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}
