package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action is what runs while a tween plays and once it is done.
type Action struct {
	onChange func(float32)
	onFinish func()
	nexts    map[*gween.Tween]*Action
}

// fade eases *v from begin to end over seconds.
func fade(v *float64, begin, end, seconds float32, easing ease.TweenFunc) (*gween.Tween, *Action) {
	return gween.New(begin, end, seconds, easing), &Action{
		onChange: func(curr float32) { *v = float64(curr) },
	}
}

// then queues t to start when a finishes.
func (a *Action) then(t *gween.Tween, next *Action) *Action {
	if a.nexts == nil {
		a.nexts = make(map[*gween.Tween]*Action)
	}
	a.nexts[t] = next
	return next
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if !finished {
			continue
		}
		if a.onFinish != nil {
			a.onFinish()
		}
		for next, action := range a.nexts {
			g.Tweens[next] = action
		}
		delete(g.Tweens, t)
	}
}
