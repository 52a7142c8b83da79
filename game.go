package main

import (
	"fmt"
	"time"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	hudHeight  = 28
	overlayMax = 0.6
)

var keyHeadings = map[ebiten.Key]model.Heading{
	ebiten.KeyUp:    model.Up,
	ebiten.KeyW:     model.Up,
	ebiten.KeyDown:  model.Down,
	ebiten.KeyS:     model.Down,
	ebiten.KeyLeft:  model.Left,
	ebiten.KeyA:     model.Left,
	ebiten.KeyRight: model.Right,
	ebiten.KeyD:     model.Right,
}

var keyPresets = map[ebiten.Key]model.Preset{
	ebiten.Key1: model.Small,
	ebiten.Key2: model.Medium,
	ebiten.Key3: model.Large,
}

// Stroke tracks one touch until it has travelled far enough to read as a swipe.
type Stroke struct {
	ID           int
	initX, initY int
	released     bool
}

func NewStroke(id int) *Stroke {
	x, y := ebiten.TouchPosition(id)
	return &Stroke{ID: id, initX: x, initY: y}
}

// Update returns the swipe heading once the touch moved more than dist pixels.
func (s *Stroke) Update(dist int) (model.Heading, bool) {
	if s.released {
		return model.Heading{}, false
	}
	if inpututil.IsTouchJustReleased(s.ID) {
		s.released = true
		return model.Heading{}, false
	}
	x, y := ebiten.TouchPosition(s.ID)
	h, ok := swipeHeading(x-s.initX, y-s.initY, dist)
	if ok {
		s.released = true
	}
	return h, ok
}

func swipeHeading(dx, dy, dist int) (model.Heading, bool) {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax <= dist && ay <= dist:
		return model.Heading{}, false
	case ax >= ay && dx > 0:
		return model.Right, true
	case ax >= ay:
		return model.Left, true
	case dy > 0:
		return model.Down, true
	default:
		return model.Up, true
	}
}

type Game struct {
	Driver  *model.Driver
	cfg     ClientConfig
	Layout  model.Layout
	Panel   *Nine
	Font    font.Face
	Tweens  map[*gween.Tween]*Action
	strokes map[*Stroke]struct{}

	screen       *ebiten.Image
	focused      bool
	lastUpdate   time.Time
	lastOutcome  model.Outcome
	overlayAlpha float64
	textAlpha    float64
}

func NewGame(cfg ClientConfig) (*Game, error) {
	tt, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	panel, err := NewFrame(COLOR_TEXT, COLOR_BACKGROUND.RGBA(1))
	if err != nil {
		return nil, err
	}
	g := &Game{
		Driver: model.NewDriver(cfg.Settings.Preset, cfg.Settings.Speed, model.LogCues{}),
		cfg:    cfg,
		Panel:  panel,
		Font: truetype.NewFace(tt, &truetype.Options{
			Size:    32,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		Tweens:  make(map[*gween.Tween]*Action),
		strokes: map[*Stroke]struct{}{},
	}
	g.fit()
	return g, nil
}

// fit lays the arena out for the configured window space.
func (g *Game) fit() {
	size := g.Driver.Match.Preset.Size()
	g.Layout = model.Fit(g.cfg.Width, g.cfg.Height-hudHeight, size.Cols, size.Rows)
	g.Panel.SetPosition(0, 0)
	g.Panel.SetSize(g.Layout.Width, hudHeight)
}

func (g *Game) ScreenSize() (int, int) {
	return g.Layout.Width, g.Layout.Height + hudHeight
}

func (g *Game) handleInput() {
	x, y := ebiten.CursorPosition()
	_, g.focused = g.Layout.CellAt(x, y-hudHeight)

	for _, id := range inpututil.JustPressedTouchIDs() {
		g.strokes[NewStroke(id)] = struct{}{}
	}
	for s := range g.strokes {
		if h, ok := s.Update(g.Layout.Cell); ok {
			g.Driver.Steer(h)
		}
		if s.released {
			delete(g.strokes, s)
		}
	}

	if !g.focused {
		return
	}
	for key, h := range keyHeadings {
		if inpututil.IsKeyJustPressed(key) {
			g.Driver.Steer(h)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Driver.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Driver.Reset()
	}
	for key, p := range keyPresets {
		if inpututil.IsKeyJustPressed(key) && p != g.Driver.Match.Preset {
			g.Driver.SetPreset(p)
			g.fit()
			ebiten.SetScreenSize(g.ScreenSize())
			log.WithField("preset", p.Name()).Info("preset changed")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.Driver.SetSpeed(g.Driver.Speed + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.Driver.SetSpeed(g.Driver.Speed - 1)
	}
}

// watchOutcome fades the overlay in when a match ends and clears it on reset.
func (g *Game) watchOutcome() {
	outcome := g.Driver.Match.Outcome
	if outcome == g.lastOutcome {
		return
	}
	g.lastOutcome = outcome
	g.Tweens = make(map[*gween.Tween]*Action)
	g.overlayAlpha, g.textAlpha = 0, 0
	if outcome == model.Unset {
		return
	}
	overlay, dim := fade(&g.overlayAlpha, 0, overlayMax, .4, ease.OutQuad)
	dim.then(fade(&g.textAlpha, 0, 1, .3, ease.Linear)).onFinish = func() {
		log.WithField("outcome", outcome.Name()).Debug("banner shown")
	}
	g.Tweens[overlay] = dim
}

func (g *Game) update(screen *ebiten.Image) error {
	now := time.Now()
	dt := float32(0)
	if !g.lastUpdate.IsZero() {
		dt = float32(now.Sub(g.lastUpdate).Seconds())
	}
	g.lastUpdate = now

	g.handleInput()
	g.updateTweens(dt)

	if ebiten.IsDrawingSkipped() {
		g.Driver.Frame(now, nil)
		g.watchOutcome()
		return nil
	}
	g.screen = screen
	g.Driver.Frame(now, g)
	return nil
}

// Render draws the arena below the status panel.
func (g *Game) Render(m *model.Match) {
	g.watchOutcome()
	screen := g.screen
	if err := screen.Fill(COLOR_BACKGROUND.RGBA(1)); err != nil {
		log.Printf("%v", err)
	}

	cell := float64(g.Layout.Cell)
	top := float64(hudHeight)
	w, h := float64(g.Layout.Width), float64(g.Layout.Height)
	gridColor := COLOR_GRID.RGBA(1)
	for c := 0; c <= m.Grid.Cols; c++ {
		ebitenutil.DrawLine(screen, float64(c)*cell, top, float64(c)*cell, top+h, gridColor)
	}
	for r := 0; r <= m.Grid.Rows; r++ {
		ebitenutil.DrawLine(screen, 0, top+float64(r)*cell, w, top+float64(r)*cell, gridColor)
	}

	for r := 0; r < m.Grid.Rows; r++ {
		for c := 0; c < m.Grid.Cols; c++ {
			owner := m.Grid.At(model.Point{X: c, Y: r})
			colors, ok := COLORS[owner]
			if !ok {
				continue
			}
			ebitenutil.DrawRect(screen, float64(c)*cell+1, top+float64(r)*cell+1, cell-1, cell-1, colors[0].RGBA(1))
		}
	}
	g.drawHead(screen, m.Human, COLORS[model.Agent1][1])
	g.drawHead(screen, m.Computer, COLORS[model.Agent2][1])

	if g.overlayAlpha > 0 {
		ebitenutil.DrawRect(screen, 0, top, w, h, COLOR_OVERLAY.RGBA(g.overlayAlpha))
	}
	if banner := m.Outcome.Banner(); banner != "" && g.textAlpha > 0 {
		bounds := font.MeasureString(g.Font, banner)
		x := (g.Layout.Width - bounds.Ceil()) / 2
		y := hudHeight + g.Layout.Height/2 + g.Font.Metrics().Ascent.Ceil()/2
		text.Draw(screen, banner, g.Font, x, y, COLOR_TEXT.RGBA(g.textAlpha))
	}

	g.Panel.Draw(screen)
	state := "PAUSED"
	if m.Running {
		state = "RUNNING"
	} else if m.Over() {
		state = m.Outcome.Name()
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s  %s  speed %d  step %d", m.Preset.Name(), state, g.Driver.Speed, m.Steps),
		8, 6)
}

func (g *Game) drawHead(screen *ebiten.Image, a model.Agent, c GameColor) {
	cell := float64(g.Layout.Cell)
	x := float64(a.Pos.X) * cell
	y := float64(hudHeight) + float64(a.Pos.Y)*cell
	ebitenutil.DrawRect(screen, x, y, cell, cell, c.RGBA(1))

	// dot on the leading edge
	dot := cell / 4
	cx := x + cell/2 + float64(a.Heading.DX)*cell/4 - dot/2
	cy := y + cell/2 + float64(a.Heading.DY)*cell/4 - dot/2
	ebitenutil.DrawRect(screen, cx, cy, dot, dot, COLOR_BACKGROUND.RGBA(1))
}

func main() {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"preset": cfg.Settings.Preset.Name(),
		"speed":  cfg.Settings.Speed,
	}).Info("starting light cycles")
	w, h := game.ScreenSize()
	if err := ebiten.Run(game.update, w, h, 1, "Matrix OS // light cycles"); err != nil {
		log.Fatal(err)
	}
}
