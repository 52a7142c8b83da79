package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloodFillRespectsBudget(t *testing.T) {
	g := NewGrid(60, 30)
	assert.Equal(t, 600, FloodBudget(g))
	assert.Equal(t, 600, FloodFill(g, Point{X: 30, Y: 15}, FloodBudget(g)))
	assert.Equal(t, 10, FloodFill(g, Point{X: 0, Y: 0}, 10))
	assert.Equal(t, 0, FloodFill(g, Point{X: -1, Y: 0}, 10))
	assert.Equal(t, 0, FloodFill(g, Point{X: 0, Y: 0}, 0))

	small := NewGrid(18, 9)
	assert.Equal(t, 162, FloodBudget(small))
	assert.Equal(t, 162, FloodFill(small, Point{X: 0, Y: 0}, FloodBudget(small)))
}

func TestFloodFillStopsAtWalls(t *testing.T) {
	g := GridFromBoard([]string{
		"..#....",
		"..#....",
		"###....",
	})
	assert.Equal(t, 4, FloodFill(g, Point{X: 0, Y: 0}, 100))
	assert.Equal(t, 12, FloodFill(g, Point{X: 6, Y: 2}, 100))
	// an occupied start is walked through
	assert.Equal(t, 17, FloodFill(g, Point{X: 2, Y: 0}, 100))
}

func TestChooseHeadingPrefersStraightOnTie(t *testing.T) {
	g := NewGrid(9, 9)
	a := Agent{Pos: Point{X: 4, Y: 4}, Heading: Up, Next: Up}
	g.Claim(a.Pos, Agent2)
	assert.Equal(t, Up, ChooseHeading(g, a))
}

func TestChooseHeadingPicksLargerArea(t *testing.T) {
	board := []string{
		"############",
		"#####.......",
		"#...2#......",
		"####........",
		"............",
		"............",
		"............",
	}
	g := GridFromBoard(board)
	a := Agent{Pos: Point{X: 4, Y: 2}, Heading: Left, Next: Left}
	assert.Equal(t, Down, ChooseHeading(g, a))
}

func TestChooseHeadingNeverReverses(t *testing.T) {
	// only the reverse cell is open
	g := GridFromBoard([]string{
		"###",
		"#2.",
		"###",
	})
	a := Agent{Pos: Point{X: 1, Y: 1}, Heading: Left, Next: Left}
	assert.Equal(t, Left, ChooseHeading(g, a))
}

func TestChooseHeadingIsDeterministic(t *testing.T) {
	m := NewMatch(Medium)
	for i := 0; i < 10; i++ {
		Step(m)
	}
	first := ChooseHeading(m.Grid, m.Computer)
	before := m.Grid.Clone()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ChooseHeading(m.Grid, m.Computer))
	}
	assert.Equal(t, before, m.Grid)
}

func TestHeadingTurns(t *testing.T) {
	assert.Equal(t, Right, Up.Right())
	assert.Equal(t, Left, Up.Left())
	assert.Equal(t, Up, Left.Right())
	assert.Equal(t, Down, Left.Left())
	assert.Equal(t, Down, Up.Reverse())
	for _, h := range Headings {
		assert.NotEqual(t, h.Reverse(), h.Right())
		assert.NotEqual(t, h.Reverse(), h.Left())
		parsed, ok := ParseHeading(h.Name())
		assert.True(t, ok)
		assert.Equal(t, h, parsed)
	}
}
