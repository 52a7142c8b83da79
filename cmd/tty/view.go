package main

import (
	"fmt"

	"github.com/IoannouAndreas/CV-Os/model"
	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth = 2
	hudRows   = 1
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkGreen)
	styleBorder     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen)
	styleText       = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightGreen)
	styleBanner     = tcell.StyleDefault.Background(tcell.ColorLightGreen).Foreground(tcell.ColorBlack).Bold(true)
	styleDim        = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray).Dim(true)

	trailStyles = map[model.Cell]tcell.Style{
		model.Agent1: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		model.Agent2: tcell.StyleDefault.Foreground(tcell.ColorDeepPink),
	}
	headStyles = map[model.Cell]tcell.Style{
		model.Agent1: tcell.StyleDefault.Foreground(tcell.ColorPaleGreen).Bold(true),
		model.Agent2: tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
	}
	headRunes = map[model.Heading]rune{
		model.Up:    '^',
		model.Down:  'v',
		model.Left:  '<',
		model.Right: '>',
	}
)

// Rect is the arena area in terminal cells, border excluded.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// ArenaRect centers a cols x rows arena below the status line.
func ArenaRect(width, height, cols, rows int) Rect {
	r := Rect{Width: cols * cellWidth, Height: rows}
	r.X = (width - r.Width) / 2
	if r.X < 1 {
		r.X = 1
	}
	r.Y = hudRows + 1 + (height-hudRows-2-r.Height)/2
	if r.Y < hudRows+1 {
		r.Y = hudRows + 1
	}
	return r
}

// View draws a match onto a terminal screen and tracks pointer focus.
type View struct {
	screen tcell.Screen
	driver *model.Driver
	arena  Rect

	mouseSeen      bool
	mouseX, mouseY int
}

func NewView(screen tcell.Screen, driver *model.Driver) *View {
	v := &View{screen: screen, driver: driver}
	v.Resize()
	return v
}

// Resize recomputes the arena rectangle for the screen and the current preset.
func (v *View) Resize() {
	w, h := v.screen.Size()
	size := v.driver.Match.Preset.Size()
	v.arena = ArenaRect(w, h, size.Cols, size.Rows)
}

func (v *View) Arena() Rect {
	return v.arena
}

func (v *View) Pointer(x, y int) {
	v.mouseSeen = true
	v.mouseX, v.mouseY = x, y
}

// Focused reports whether keys should reach the arena. Terminals that never
// report the mouse count as focused.
func (v *View) Focused() bool {
	return !v.mouseSeen || v.arena.Contains(v.mouseX, v.mouseY)
}

func (v *View) Render(m *model.Match) {
	s := v.screen
	s.Fill(' ', styleBackground)
	a := v.arena

	for x := a.X - 1; x <= a.X+a.Width; x++ {
		s.SetContent(x, a.Y-1, tcell.RuneHLine, nil, styleBorder)
		s.SetContent(x, a.Y+a.Height, tcell.RuneHLine, nil, styleBorder)
	}
	for y := a.Y; y < a.Y+a.Height; y++ {
		s.SetContent(a.X-1, y, tcell.RuneVLine, nil, styleBorder)
		s.SetContent(a.X+a.Width, y, tcell.RuneVLine, nil, styleBorder)
	}
	s.SetContent(a.X-1, a.Y-1, tcell.RuneULCorner, nil, styleBorder)
	s.SetContent(a.X+a.Width, a.Y-1, tcell.RuneURCorner, nil, styleBorder)
	s.SetContent(a.X-1, a.Y+a.Height, tcell.RuneLLCorner, nil, styleBorder)
	s.SetContent(a.X+a.Width, a.Y+a.Height, tcell.RuneLRCorner, nil, styleBorder)

	for r := 0; r < m.Grid.Rows; r++ {
		for c := 0; c < m.Grid.Cols; c++ {
			owner := m.Grid.At(model.Point{X: c, Y: r})
			ch, style := '·', styleBackground
			if st, ok := trailStyles[owner]; ok {
				ch, style = tcell.RuneBlock, st
			}
			if m.Over() {
				style = style.Dim(true)
			}
			v.put(c, r, ch, style)
		}
	}
	v.head(m.Human, model.Agent1)
	v.head(m.Computer, model.Agent2)

	if banner := m.Outcome.Banner(); banner != "" {
		text := " " + banner + " "
		x := a.X + (a.Width-len(text))/2
		v.print(x, a.Y+a.Height/2, text, styleBanner)
		v.print(a.X+(a.Width-len("r: rematch"))/2, a.Y+a.Height/2+1, "r: rematch", styleDim)
	}

	state := "paused"
	if m.Running {
		state = "running"
	} else if m.Over() {
		state = "over"
	}
	status := fmt.Sprintf("light cycles  %s  %s  speed %d  step %d", m.Preset.Name(), state, v.driver.Speed, m.Steps)
	if !v.Focused() {
		status += "  (point at the arena)"
	}
	v.print(a.X-1, 0, status, styleText)
	s.Show()
}

func (v *View) head(a model.Agent, owner model.Cell) {
	r, ok := headRunes[a.Heading]
	if !ok {
		r = '@'
	}
	v.put(a.Pos.X, a.Pos.Y, r, headStyles[owner])
}

// put fills the terminal cells of one grid cell.
func (v *View) put(col, row int, r rune, style tcell.Style) {
	x := v.arena.X + col*cellWidth
	y := v.arena.Y + row
	for i := 0; i < cellWidth; i++ {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *View) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
