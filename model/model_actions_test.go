package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customMatch(board []string, human, computer Agent) *Match {
	return &Match{
		Grid:     GridFromBoard(board),
		Human:    human,
		Computer: computer,
	}
}

func TestNewMatchLayout(t *testing.T) {
	for _, p := range []Preset{Small, Medium, Large} {
		m := NewMatch(p)
		size := p.Size()
		assert.Equal(t, size.Cols, m.Grid.Cols, p.Name())
		assert.Equal(t, size.Rows, m.Grid.Rows, p.Name())
		assert.Equal(t, Point{X: 2, Y: size.Rows / 2}, m.Human.Pos)
		assert.Equal(t, Right, m.Human.Heading)
		assert.Equal(t, Point{X: size.Cols - 3, Y: size.Rows / 2}, m.Computer.Pos)
		assert.Equal(t, Left, m.Computer.Heading)
		assert.Equal(t, Agent1, m.Grid.At(m.Human.Pos))
		assert.Equal(t, Agent2, m.Grid.At(m.Computer.Pos))
		assert.Equal(t, 2, m.Grid.Occupied())
		assert.False(t, m.Running)
		assert.Equal(t, Unset, m.Outcome)
	}
}

func TestSmallPresetStartCells(t *testing.T) {
	m := NewMatch(Small)
	assert.Equal(t, Point{X: 2, Y: 4}, m.Human.Pos)
	assert.Equal(t, Point{X: 15, Y: 4}, m.Computer.Pos)
}

func TestGridClaimNeverReleases(t *testing.T) {
	g := NewGrid(3, 3)
	p := Point{X: 1, Y: 1}
	require.True(t, g.Claim(p, Agent1))
	assert.False(t, g.Claim(p, Agent2))
	assert.False(t, g.Claim(p, Empty))
	assert.Equal(t, Agent1, g.At(p))
	assert.False(t, g.Claim(Point{X: 3, Y: 0}, Agent1))
	assert.False(t, g.Free(Point{X: -1, Y: 0}))
}

func TestSteerRejectsReverse(t *testing.T) {
	m := NewMatch(Small)
	assert.False(t, m.Steer(Left))
	assert.Equal(t, Right, m.Human.Next)

	assert.True(t, m.Steer(Up))
	// still judged against the committed heading
	assert.False(t, m.Steer(Left))
	assert.True(t, m.Steer(Down))
	assert.Equal(t, Down, m.Human.Next)

	assert.False(t, m.Steer(Heading{DX: 1, DY: 1}))
}

func TestStepMovesBoth(t *testing.T) {
	m := NewMatch(Small)
	m.Steer(Down)
	res := Step(m)
	require.True(t, res.Moved)
	assert.Equal(t, Point{X: 2, Y: 5}, m.Human.Pos)
	assert.Equal(t, Down, m.Human.Heading)
	assert.Equal(t, Point{X: 14, Y: 4}, m.Computer.Pos)
	assert.Equal(t, Agent1, m.Grid.At(Point{X: 2, Y: 5}))
	assert.Equal(t, Agent2, m.Grid.At(Point{X: 14, Y: 4}))
	assert.Equal(t, 1, m.Steps)
}

func TestHeadOnIsDrawOnExactStep(t *testing.T) {
	m := NewMatch(Small)
	m.Grid = NewGrid(18, 9)
	m.Computer.Pos = Point{X: 14, Y: 4}
	m.Grid.Claim(m.Human.Pos, Agent1)
	m.Grid.Claim(m.Computer.Pos, Agent2)

	for i := 1; i <= 5; i++ {
		res := Step(m)
		require.True(t, res.Moved, "step %d", i)
		require.Equal(t, Left, m.Computer.Heading, "step %d", i)
	}
	assert.Equal(t, Point{X: 7, Y: 4}, m.Human.Pos)
	assert.Equal(t, Point{X: 9, Y: 4}, m.Computer.Pos)

	res := Step(m)
	assert.True(t, res.HeadOn)
	assert.Equal(t, Draw, res.Outcome)
	assert.Equal(t, Draw, m.Outcome)
	assert.Equal(t, Empty, m.Grid.At(Point{X: 8, Y: 4}))
	assert.Equal(t, 5, m.Steps)
}

func TestOddGapComputerDodges(t *testing.T) {
	m := NewMatch(Small)
	for i := 1; i <= 6; i++ {
		require.True(t, Step(m).Moved, "step %d", i)
	}
	assert.Equal(t, Point{X: 8, Y: 4}, m.Human.Pos)
	assert.Equal(t, Point{X: 9, Y: 4}, m.Computer.Pos)

	res := Step(m)
	assert.False(t, res.HeadOn)
	assert.True(t, res.HumanCollided)
	assert.False(t, res.ComputerCollided)
	assert.Equal(t, Up, m.Computer.Next)
	assert.Equal(t, Player2Wins, m.Outcome)
}

func TestSingleCollisions(t *testing.T) {
	board := []string{
		"......",
		"......",
		"......",
	}
	// human runs off the right edge, computer has room
	m := customMatch(board,
		Agent{Pos: Point{X: 5, Y: 0}, Heading: Right, Next: Right},
		Agent{Pos: Point{X: 3, Y: 2}, Heading: Left, Next: Left})
	m.Grid.Claim(m.Human.Pos, Agent1)
	m.Grid.Claim(m.Computer.Pos, Agent2)
	assert.Equal(t, Player2Wins, Step(m).Outcome)

	// human drives into its own trail
	m = customMatch([]string{
		"11....",
		"11....",
		"....2.",
	},
		Agent{Pos: Point{X: 1, Y: 1}, Heading: Down, Next: Down},
		Agent{Pos: Point{X: 4, Y: 2}, Heading: Left, Next: Left})
	require.True(t, m.Steer(Left))
	res := Step(m)
	assert.True(t, res.HumanCollided)
	assert.Equal(t, Player2Wins, res.Outcome)

	// computer boxed in by walls
	m = customMatch([]string{
		"......",
		"...###",
		"...#2.",
	},
		Agent{Pos: Point{X: 0, Y: 0}, Heading: Right, Next: Right},
		Agent{Pos: Point{X: 4, Y: 2}, Heading: Left, Next: Left})
	m.Grid.Claim(m.Human.Pos, Agent1)
	m.Grid.Claim(Point{X: 5, Y: 2}, Agent2)
	res = Step(m)
	assert.True(t, res.ComputerCollided)
	assert.False(t, res.HumanCollided)
	assert.Equal(t, Player1Wins, res.Outcome)
	assert.Equal(t, Point{X: 0, Y: 0}, m.Human.Pos)
}

func TestBothIndependentCollisionsDraw(t *testing.T) {
	m := customMatch([]string{
		"1..2",
	},
		Agent{Pos: Point{X: 0, Y: 0}, Heading: Left, Next: Left},
		Agent{Pos: Point{X: 3, Y: 0}, Heading: Right, Next: Right})
	res := Step(m)
	assert.True(t, res.HumanCollided)
	assert.True(t, res.ComputerCollided)
	assert.False(t, res.HeadOn)
	assert.Equal(t, Draw, res.Outcome)
}

func TestDeadEndCorridor(t *testing.T) {
	board := []string{
		"############",
		"#####.......",
		"#...2#......",
		"#####.......",
		"............",
		"......1.....",
		"............",
	}
	m := customMatch(board,
		Agent{Pos: Point{X: 6, Y: 5}, Heading: Right, Next: Right},
		Agent{Pos: Point{X: 4, Y: 2}, Heading: Left, Next: Left})

	res := Step(m)
	require.True(t, res.Moved)
	assert.Equal(t, Point{X: 3, Y: 2}, m.Computer.Pos)

	for i := 2; i <= 3; i++ {
		res = Step(m)
		require.True(t, res.Moved, "step %d", i)
	}
	assert.Equal(t, Point{X: 1, Y: 2}, m.Computer.Pos)

	res = Step(m)
	assert.True(t, res.ComputerCollided)
	assert.Equal(t, Player1Wins, res.Outcome)
	assert.Equal(t, 3, m.Steps)
}

func TestTerminalStepIsIdempotent(t *testing.T) {
	m := NewMatch(Small)
	for !m.Over() {
		Step(m)
	}
	before := m.Clone()
	for i := 0; i < 5; i++ {
		res := Step(m)
		assert.False(t, res.Moved)
		assert.Equal(t, before.Outcome, res.Outcome)
	}
	assert.Equal(t, before, m)
	assert.False(t, m.Running)
}

func TestRandomMatchesKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, p := range []Preset{Small, Medium, Large} {
		for game := 0; game < 20; game++ {
			m := NewMatch(p)
			m.Running = true
			for !m.Over() {
				if rnd.Intn(4) == 0 {
					m.Steer(Headings[rnd.Intn(4)])
				}
				prev := m.Clone()
				res := Step(m)

				require.True(t, m.Computer.Next.Valid())
				for _, a := range []Agent{m.Human, m.Computer} {
					require.True(t, m.Grid.In(a.Pos), "agent out of bounds at %v", a.Pos)
				}
				for i, c := range prev.Grid.Cells {
					if c != Empty {
						require.Equal(t, c, m.Grid.Cells[i], "cell %d released", i)
					}
				}
				if res.Moved {
					require.NotEqual(t, prev.Human.Heading.Reverse(), m.Human.Heading)
					require.NotEqual(t, prev.Computer.Heading.Reverse(), m.Computer.Heading)
					require.Equal(t, prev.Steps+1, m.Steps)
				} else {
					require.Equal(t, prev.Human.Pos, m.Human.Pos)
					require.Equal(t, prev.Computer.Pos, m.Computer.Pos)
				}
			}
			assert.False(t, m.Running)
		}
	}
}
