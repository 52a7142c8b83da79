package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordCues struct {
	played []Cue
}

func (r *recordCues) Play(c Cue) {
	r.played = append(r.played, c)
}

type countRenderer struct {
	frames int
	last   *Match
}

func (c *countRenderer) Render(m *Match) {
	c.frames++
	c.last = m
}

func TestStepInterval(t *testing.T) {
	assert.InDelta(t, 0.24, StepInterval(1), 1e-9)
	assert.InDelta(t, 0.06, StepInterval(12), 1e-9)
	assert.InDelta(t, 0.24-0.18*5/11, StepInterval(6), 1e-9)
	assert.InDelta(t, 0.24, StepInterval(-3), 1e-9)
	assert.InDelta(t, 0.06, StepInterval(40), 1e-9)
	for s := MinSpeed; s < MaxSpeed; s++ {
		assert.Greater(t, StepInterval(s), StepInterval(s+1))
	}
}

func TestFrameFirstCallHasNoElapsedTime(t *testing.T) {
	d := NewDriver(Small, 1, nil)
	d.Toggle()
	r := &countRenderer{}
	t0 := time.Unix(1000, 0)

	assert.Equal(t, 0, d.Frame(t0, r))
	assert.Equal(t, 1, r.frames)
	assert.Equal(t, 0.0, d.Pending())
}

func TestFrameCatchesUp(t *testing.T) {
	d := NewDriver(Small, 1, nil)
	d.Toggle()
	r := &countRenderer{}
	t0 := time.Unix(1000, 0)
	d.Frame(t0, r)

	assert.Equal(t, 1, d.Frame(t0.Add(250*time.Millisecond), r))
	assert.InDelta(t, 0.01, d.Pending(), 1e-9)

	// a late frame drains every due step before one draw
	assert.Equal(t, 2, d.Frame(t0.Add(750*time.Millisecond), r))
	assert.InDelta(t, 0.03, d.Pending(), 1e-9)
	assert.Equal(t, 3, d.Match.Steps)
	assert.Equal(t, 3, r.frames)

	// short frames draw without stepping
	assert.Equal(t, 0, d.Frame(t0.Add(760*time.Millisecond), r))
	assert.Equal(t, 4, r.frames)
	assert.Equal(t, 3, d.Match.Steps)
}

func TestFramePausedDoesNotAccumulate(t *testing.T) {
	d := NewDriver(Small, 12, nil)
	r := &countRenderer{}
	t0 := time.Unix(1000, 0)
	d.Frame(t0, r)
	assert.Equal(t, 0, d.Frame(t0.Add(5*time.Second), r))
	assert.Equal(t, 0.0, d.Pending())
	assert.Equal(t, 2, r.frames)

	d.Toggle()
	assert.Equal(t, 1, d.Frame(t0.Add(5*time.Second+70*time.Millisecond), r))
}

func TestFrameWithoutRenderer(t *testing.T) {
	d := NewDriver(Small, 12, nil)
	d.Toggle()
	t0 := time.Unix(1000, 0)
	d.Frame(t0, nil)
	assert.Equal(t, 1, d.Frame(t0.Add(100*time.Millisecond), nil))
}

func TestDriverStopsOnOutcome(t *testing.T) {
	cues := &recordCues{}
	d := NewDriver(Small, 12, cues)
	d.Toggle()
	n := d.Advance(60)
	require.True(t, d.Match.Over())
	assert.Equal(t, d.Match.Steps+1, n)
	assert.False(t, d.Match.Running)
	assert.Equal(t, []Cue{Menu, Boom}, cues.played)

	assert.Equal(t, 0, d.Advance(60))
	assert.False(t, d.Toggle())
	assert.Equal(t, []Cue{Menu, Boom}, cues.played)
}

func TestDriverReset(t *testing.T) {
	cues := &recordCues{}
	d := NewDriver(Small, 3, cues)
	d.Toggle()
	d.Advance(StepInterval(3)*4 + 0.01)
	require.Equal(t, 4, d.Match.Steps)

	d.Reset()
	assert.Equal(t, 0, d.Match.Steps)
	assert.False(t, d.Match.Running)
	assert.Equal(t, Unset, d.Match.Outcome)
	assert.Equal(t, 0.0, d.Pending())
	assert.Equal(t, 2, d.Match.Grid.Occupied())
	assert.Equal(t, 3, d.Speed)
	assert.Equal(t, []Cue{Menu, Open}, cues.played)
}

func TestDriverSetPreset(t *testing.T) {
	d := NewDriver(Small, 5, nil)
	d.Toggle()
	d.SetPreset(Large)
	assert.Equal(t, Large, d.Match.Preset)
	assert.Equal(t, 60, d.Match.Grid.Cols)
	assert.Equal(t, 30, d.Match.Grid.Rows)
	assert.False(t, d.Match.Running)
}

func TestToggleKeepsState(t *testing.T) {
	d := NewDriver(Small, 12, nil)
	d.Toggle()
	d.Advance(0.13)
	require.Equal(t, 2, d.Match.Steps)
	snap := d.Match.Clone()

	d.Toggle()
	assert.False(t, d.Match.Running)
	d.Toggle()
	snap.Running = true
	assert.Equal(t, snap, d.Match)
}

func TestSteerTakesEffectOnNextStep(t *testing.T) {
	d := NewDriver(Small, 12, nil)
	d.Toggle()
	require.True(t, d.Steer(Up))
	assert.Equal(t, Point{X: 2, Y: 4}, d.Match.Human.Pos)

	d.Advance(0.07)
	assert.Equal(t, Point{X: 2, Y: 3}, d.Match.Human.Pos)
	assert.Equal(t, Up, d.Match.Human.Heading)
	assert.False(t, d.Steer(Down))
}

func TestSetSpeedClamps(t *testing.T) {
	d := NewDriver(Small, 99, nil)
	assert.Equal(t, MaxSpeed, d.Speed)
	d.SetSpeed(0)
	assert.Equal(t, MinSpeed, d.Speed)
	assert.InDelta(t, 0.24, d.Interval(), 1e-9)
}
