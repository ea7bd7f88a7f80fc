package lumen

import (
	"time"

	"github.com/tanema/gween"
)

// PropertyAnimator interpolates one scalar property between From and To over a
// duration. The clock starts on the first Step, not when the animator is armed.
type PropertyAnimator struct {
	from, to   float32
	durationMs float32
	easing     EasingFunction
	running    bool

	started   bool
	startTime time.Time

	// tween runs over normalized time [0, 1]; Set returns the exact end value
	// at t == 1.
	tween *gween.Tween
}

// Start arms the animator. durationSeconds <= 0 completes on the first Step.
// Calling Start while running restarts from scratch.
func (p *PropertyAnimator) Start(from, to, durationSeconds float32, easing EasingFunction) {
	p.from = from
	p.to = to
	p.durationMs = durationSeconds * 1000
	p.easing = easing
	p.running = true
	p.started = false
	p.startTime = time.Time{}
	p.tween = gween.New(from, to, 1, easing.tweenFunc())
}

// Step advances the animator to now and returns the property value. Once the
// normalized time passes 1 the animator stops and returns To exactly on this
// and every later call.
func (p *PropertyAnimator) Step(now time.Time) float32 {
	if !p.running {
		return p.to
	}
	if !p.started {
		p.started = true
		p.startTime = now
	}
	if p.durationMs <= 0 {
		return p.finish()
	}
	elapsed := float32(now.Sub(p.startTime)) / float32(time.Millisecond)
	t := elapsed / p.durationMs
	if t <= 1 {
		v, _ := p.tween.Set(t)
		return v
	}
	return p.finish()
}

func (p *PropertyAnimator) finish() float32 {
	p.running = false
	p.started = false
	p.startTime = time.Time{}
	return p.to
}

// Running reports whether the animator still has time left to run.
func (p *PropertyAnimator) Running() bool { return p.running }

// From returns the start value.
func (p *PropertyAnimator) From() float32 { return p.from }

// To returns the end value.
func (p *PropertyAnimator) To() float32 { return p.to }

// Duration returns the configured duration.
func (p *PropertyAnimator) Duration() time.Duration {
	return time.Duration(p.durationMs * float32(time.Millisecond))
}

// Easing returns the configured curve.
func (p *PropertyAnimator) Easing() EasingFunction { return p.easing }
