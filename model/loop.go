package model

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	MinSpeed = 1
	MaxSpeed = 12

	slowInterval = 0.24
	fastInterval = 0.06
)

// StepInterval maps the speed control to seconds per step.
func StepInterval(speed int) float64 {
	speed = ClampSpeed(speed)
	t := float64(speed-MinSpeed) / float64(MaxSpeed-MinSpeed)
	return slowInterval + (fastInterval-slowInterval)*t
}

func ClampSpeed(speed int) int {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// Renderer draws the current match once per frame.
type Renderer interface {
	Render(m *Match)
}

type Cue int

const (
	Boom Cue = iota + 1
	Open
	Menu
)

func (c Cue) Name() string {
	switch c {
	case Boom:
		return "boom"
	case Open:
		return "open"
	case Menu:
		return "menu"
	default:
		return fmt.Sprintf("n/a(%d)", c)
	}
}

// Cues is the host's sound effect trigger. Play must not block.
type Cues interface {
	Play(c Cue)
}

type LogCues struct{}

func (LogCues) Play(c Cue) {
	log.WithField("cue", c.Name()).Debug("sound cue")
}

// Driver runs the fixed step loop for one arena. It is not safe for
// concurrent use; the owner calls every method from one goroutine.
type Driver struct {
	Match *Match
	Speed int
	Cues  Cues

	acc     float64
	last    time.Time
	started bool
}

func NewDriver(p Preset, speed int, cues Cues) *Driver {
	return &Driver{
		Match: NewMatch(p),
		Speed: ClampSpeed(speed),
		Cues:  cues,
	}
}

func (d *Driver) Interval() float64 {
	return StepInterval(d.Speed)
}

// Pending returns the carried over time not yet consumed by a step.
func (d *Driver) Pending() float64 {
	return d.acc
}

// Frame measures the time since the previous frame, runs every step that is
// due and draws once. The first frame has dt 0.
func (d *Driver) Frame(now time.Time, r Renderer) int {
	dt := 0.0
	if d.started {
		dt = now.Sub(d.last).Seconds()
		if dt < 0 {
			dt = 0
		}
	}
	d.last, d.started = now, true

	n := d.Advance(dt)
	if r != nil {
		r.Render(d.Match)
	}
	return n
}

// Advance adds dt seconds to the clock and drains whole step intervals.
// Time only accumulates while the match is running.
func (d *Driver) Advance(dt float64) int {
	if !d.Match.Running || d.Match.Over() {
		return 0
	}
	d.acc += dt
	interval := d.Interval()
	n := 0
	for d.Match.Running && !d.Match.Over() && d.acc >= interval {
		d.acc -= interval
		res := Step(d.Match)
		n++
		if res.Outcome != Unset {
			log.WithFields(log.Fields{
				"outcome": res.Outcome.Name(),
				"steps":   d.Match.Steps,
				"headOn":  res.HeadOn,
			}).Info("match over")
			d.cue(Boom)
		}
	}
	return n
}

func (d *Driver) Steer(h Heading) bool {
	return d.Match.Steer(h)
}

// Toggle starts or pauses the match. A finished match stays stopped.
func (d *Driver) Toggle() bool {
	if d.Match.Over() {
		return false
	}
	d.Match.Running = !d.Match.Running
	d.cue(Menu)
	return true
}

func (d *Driver) Reset() {
	d.Match = NewMatch(d.Match.Preset)
	d.acc = 0
	d.cue(Open)
}

func (d *Driver) SetPreset(p Preset) {
	d.Match.Preset = p
	d.Reset()
}

func (d *Driver) SetSpeed(speed int) {
	d.Speed = ClampSpeed(speed)
}

func (d *Driver) cue(c Cue) {
	if d.Cues != nil {
		d.Cues.Play(c)
	}
}
