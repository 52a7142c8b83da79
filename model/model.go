package model

import "fmt"

type Cell uint8

const (
	Empty Cell = iota
	Agent1
	Agent2
)

func (c Cell) Name() string {
	switch c {
	case Empty:
		return "EMPTY"
	case Agent1:
		return "AGENT1"
	case Agent2:
		return "AGENT2"
	default:
		return fmt.Sprintf("N/A(%d)", c)
	}
}

type Point struct {
	X, Y int
}

func (p Point) Add(h Heading) Point {
	return Point{X: p.X + h.DX, Y: p.Y + h.DY}
}

// Heading is a unit step, y grows downward.
type Heading struct {
	DX, DY int
}

var (
	Up    = Heading{DX: 0, DY: -1}
	Down  = Heading{DX: 0, DY: 1}
	Left  = Heading{DX: -1, DY: 0}
	Right = Heading{DX: 1, DY: 0}

	Headings = [4]Heading{Up, Down, Left, Right}
)

func (h Heading) Reverse() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// Right returns the heading after a clockwise turn.
func (h Heading) Right() Heading {
	return Heading{DX: -h.DY, DY: h.DX}
}

// Left returns the heading after a counter clockwise turn.
func (h Heading) Left() Heading {
	return Heading{DX: h.DY, DY: -h.DX}
}

func (h Heading) Valid() bool {
	for _, c := range Headings {
		if c == h {
			return true
		}
	}
	return false
}

func (h Heading) Name() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("n/a(%d,%d)", h.DX, h.DY)
	}
}

func ParseHeading(s string) (Heading, bool) {
	for _, h := range Headings {
		if h.Name() == s {
			return h, true
		}
	}
	return Heading{}, false
}

// Agent is one light cycle. Heading is the direction of the last committed
// move, Next is what the coming step will use.
type Agent struct {
	Pos     Point
	Heading Heading
	Next    Heading
}

type Outcome int

const (
	Unset Outcome = iota
	Player1Wins
	Player2Wins
	Draw
)

func (o Outcome) Name() string {
	switch o {
	case Unset:
		return "UNSET"
	case Player1Wins:
		return "PLAYER1_WINS"
	case Player2Wins:
		return "PLAYER2_WINS"
	case Draw:
		return "DRAW"
	default:
		return fmt.Sprintf("N/A(%d)", o)
	}
}

// Banner is the text shown over a finished arena.
func (o Outcome) Banner() string {
	switch o {
	case Player1Wins:
		return "YOU WIN"
	case Player2Wins:
		return "CPU WINS"
	case Draw:
		return "DRAW"
	default:
		return ""
	}
}

type Preset int

const (
	Small Preset = iota
	Medium
	Large
)

type PresetSize struct {
	Cols, Rows int
	// Mines is shared with the minesweeper presets of the host shell.
	Mines int
}

var presetSizes = map[Preset]PresetSize{
	Small:  {Cols: 18, Rows: 9, Mines: 10},
	Medium: {Cols: 32, Rows: 16, Mines: 40},
	Large:  {Cols: 60, Rows: 30, Mines: 99},
}

func (p Preset) Size() PresetSize {
	s, found := presetSizes[p]
	if !found {
		return presetSizes[Small]
	}
	return s
}

func (p Preset) Name() string {
	switch p {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("n/a(%d)", p)
	}
}

func ParsePreset(s string) (Preset, bool) {
	for _, p := range []Preset{Small, Medium, Large} {
		if p.Name() == s {
			return p, true
		}
	}
	return Small, false
}

type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

type Match struct {
	Preset   Preset
	Grid     *Grid
	Human    Agent
	Computer Agent
	Running  bool
	Outcome  Outcome
	// Steps counts committed steps and doubles as the state version.
	Steps int
}
