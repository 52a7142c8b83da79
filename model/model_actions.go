package model

func NewGrid(cols, rows int) *Grid {
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]Cell, cols*rows),
	}
}

func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.Cols && p.Y >= 0 && p.Y < g.Rows
}

// At returns Empty for cells outside the grid.
func (g *Grid) At(p Point) Cell {
	if !g.In(p) {
		return Empty
	}
	return g.Cells[p.Y*g.Cols+p.X]
}

func (g *Grid) Free(p Point) bool {
	return g.In(p) && g.Cells[p.Y*g.Cols+p.X] == Empty
}

// Claim marks a free cell as owned. Claimed cells are never released.
func (g *Grid) Claim(p Point, owner Cell) bool {
	if owner == Empty || !g.Free(p) {
		return false
	}
	g.Cells[p.Y*g.Cols+p.X] = owner
	return true
}

func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.Cells {
		if c != Empty {
			n++
		}
	}
	return n
}

func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Cols: g.Cols, Rows: g.Rows, Cells: cells}
}

func NewMatch(p Preset) *Match {
	size := p.Size()
	grid := NewGrid(size.Cols, size.Rows)
	m := &Match{
		Preset: p,
		Grid:   grid,
		Human: Agent{
			Pos:     Point{X: 2, Y: size.Rows / 2},
			Heading: Right,
			Next:    Right,
		},
		Computer: Agent{
			Pos:     Point{X: size.Cols - 3, Y: size.Rows / 2},
			Heading: Left,
			Next:    Left,
		},
	}
	grid.Claim(m.Human.Pos, Agent1)
	grid.Claim(m.Computer.Pos, Agent2)
	return m
}

func (m *Match) Clone() *Match {
	c := *m
	c.Grid = m.Grid.Clone()
	return &c
}

func (m *Match) Over() bool {
	return m.Outcome != Unset
}

// Steer requests the human's heading for the next step. The reverse of the
// last committed heading is refused.
func (m *Match) Steer(h Heading) bool {
	if !h.Valid() || h == m.Human.Heading.Reverse() {
		return false
	}
	m.Human.Next = h
	return true
}

type StepResult struct {
	Moved            bool
	HumanCollided    bool
	ComputerCollided bool
	HeadOn           bool
	Outcome          Outcome
}

// Step advances the match by one tick in place. A finished match is left
// untouched.
func Step(m *Match) StepResult {
	if m.Over() {
		return StepResult{Outcome: m.Outcome}
	}

	m.Computer.Next = ChooseHeading(m.Grid, m.Computer)

	humanTo := m.Human.Pos.Add(m.Human.Next)
	computerTo := m.Computer.Pos.Add(m.Computer.Next)

	res := StepResult{
		HumanCollided:    !m.Grid.Free(humanTo),
		ComputerCollided: !m.Grid.Free(computerTo),
	}
	if !res.HumanCollided && !res.ComputerCollided && humanTo == computerTo {
		res.HumanCollided = true
		res.ComputerCollided = true
		res.HeadOn = true
	}

	switch {
	case res.HumanCollided && res.ComputerCollided:
		m.Outcome = Draw
	case res.ComputerCollided:
		m.Outcome = Player1Wins
	case res.HumanCollided:
		m.Outcome = Player2Wins
	default:
		m.Grid.Claim(humanTo, Agent1)
		m.Grid.Claim(computerTo, Agent2)
		m.Human.Pos, m.Human.Heading = humanTo, m.Human.Next
		m.Computer.Pos, m.Computer.Heading = computerTo, m.Computer.Next
		m.Steps++
		res.Moved = true
	}
	if m.Over() {
		m.Running = false
	}
	res.Outcome = m.Outcome
	return res
}
