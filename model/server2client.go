package model

type ServerMessage struct {
	Setup    []Setup
	Snapshot []Snapshot
}

type Setup struct {
	Id         string
	Preset     string
	Cols, Rows int
	Mines      int
}

type Snapshot struct {
	Steps           int
	Running         bool
	Outcome         string
	Speed           int
	Human, Computer AgentState
	// Board holds one string per row: '.' empty, '1' human, '2' computer.
	Board           []string
}

type AgentState struct {
	Col, Row int
	Heading  string
}

// ClientMessage carries one control from the host shell. Only the first
// non empty field is applied.
type ClientMessage struct {
	Steer  string
	Toggle bool
	Reset  bool
	Preset string
	Speed  int
}

func NewSetup(id string, p Preset) Setup {
	size := p.Size()
	return Setup{
		Id:     id,
		Preset: p.Name(),
		Cols:   size.Cols,
		Rows:   size.Rows,
		Mines:  size.Mines,
	}
}

func NewSnapshot(d *Driver) Snapshot {
	m := d.Match
	return Snapshot{
		Steps:    m.Steps,
		Running:  m.Running,
		Outcome:  m.Outcome.Name(),
		Speed:    d.Speed,
		Human:    agentState(m.Human),
		Computer: agentState(m.Computer),
		Board:    Board(m.Grid),
	}
}

func agentState(a Agent) AgentState {
	return AgentState{Col: a.Pos.X, Row: a.Pos.Y, Heading: a.Heading.Name()}
}

func Board(g *Grid) []string {
	rows := make([]string, g.Rows)
	line := make([]byte, g.Cols)
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			switch g.At(Point{X: x, Y: y}) {
			case Agent1:
				line[x] = '1'
			case Agent2:
				line[x] = '2'
			default:
				line[x] = '.'
			}
		}
		rows[y] = string(line)
	}
	return rows
}

// GridFromBoard is the inverse of Board. Unknown characters read as empty.
func GridFromBoard(rows []string) *Grid {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	g := NewGrid(cols, len(rows))
	for y, line := range rows {
		for x := 0; x < cols && x < len(line); x++ {
			switch line[x] {
			case '1':
				g.Claim(Point{X: x, Y: y}, Agent1)
			case '2', '#':
				g.Claim(Point{X: x, Y: y}, Agent2)
			}
		}
	}
	return g
}
