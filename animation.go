package lumen

import (
	"math"
	"time"
)

// Animation animates up to five properties of a Layer at once: translation
// X/Y, rotation, uniform scale, and opacity. Each property runs on its own
// clock, so a layer can move, spin, grow, and fade simultaneously.
//
// There is no global animation manager. Attach an Animation to a Layer with
// SetAnimation or AddAnimation and the Scene steps it every frame.
type Animation struct {
	translationX PropertyAnimator
	translationY PropertyAnimator
	rotation     PropertyAnimator
	scale        PropertyAnimator
	opacity      PropertyAnimator

	// CoreAnimation-style settings consumed by the SetToValue* builders.
	KeyPath        string
	Duration       float32 // seconds
	TimingFunction TimingFunction
}

// NewAnimation returns an animation with nothing armed.
func NewAnimation() *Animation {
	return &Animation{}
}

// AnimationWithKeyPath returns a builder-style animation with a one second
// Linear timing. keyPath is descriptive only: callers still pick the property
// through the matching SetFromValue*/SetToValue* pair.
func AnimationWithKeyPath(keyPath string) *Animation {
	return &Animation{
		KeyPath:        keyPath,
		Duration:       1,
		TimingFunction: Linear,
	}
}

// ApplyTranslationX arms the X translation.
func (a *Animation) ApplyTranslationX(from, to int, seconds float32, easing EasingFunction) {
	a.translationX.Start(float32(from), float32(to), seconds, easing)
}

// ApplyTranslationY arms the Y translation.
func (a *Animation) ApplyTranslationY(from, to int, seconds float32, easing EasingFunction) {
	a.translationY.Start(float32(from), float32(to), seconds, easing)
}

// ApplyRotation arms the rotation, in degrees.
func (a *Animation) ApplyRotation(from, to int, seconds float32, easing EasingFunction) {
	a.rotation.Start(float32(from), float32(to), seconds, easing)
}

// ApplyScale arms the uniform scale.
func (a *Animation) ApplyScale(from, to, seconds float32, easing EasingFunction) {
	a.scale.Start(from, to, seconds, easing)
}

// ApplyOpacity arms the opacity.
func (a *Animation) ApplyOpacity(from, to, seconds float32, easing EasingFunction) {
	a.opacity.Start(from, to, seconds, easing)
}

// --- CoreAnimation-style builders ---
//
// SetFromValue* only records the start value. SetToValue* arms the property
// using Duration and TimingFunction.

func (a *Animation) SetFromValuePositionX(v int) { a.translationX.from = float32(v) }
func (a *Animation) SetToValuePositionX(v int)   { a.arm(&a.translationX, float32(v)) }
func (a *Animation) SetFromValuePositionY(v int) { a.translationY.from = float32(v) }
func (a *Animation) SetToValuePositionY(v int)   { a.arm(&a.translationY, float32(v)) }
func (a *Animation) SetFromValueRotation(v int)  { a.rotation.from = float32(v) }
func (a *Animation) SetToValueRotation(v int)    { a.arm(&a.rotation, float32(v)) }
func (a *Animation) SetFromValueScale(v float32) { a.scale.from = v }
func (a *Animation) SetToValueScale(v float32)   { a.arm(&a.scale, v) }

func (a *Animation) SetFromValueOpacity(v float32) { a.opacity.from = v }
func (a *Animation) SetToValueOpacity(v float32)   { a.arm(&a.opacity, v) }

func (a *Animation) arm(p *PropertyAnimator, to float32) {
	p.Start(p.from, to, a.Duration, a.TimingFunction)
}

// TranslationX exposes the X translation animator for inspection.
func (a *Animation) TranslationX() *PropertyAnimator { return &a.translationX }

// TranslationY exposes the Y translation animator for inspection.
func (a *Animation) TranslationY() *PropertyAnimator { return &a.translationY }

// Rotation exposes the rotation animator for inspection.
func (a *Animation) Rotation() *PropertyAnimator { return &a.rotation }

// Scale exposes the scale animator for inspection.
func (a *Animation) Scale() *PropertyAnimator { return &a.scale }

// Opacity exposes the opacity animator for inspection.
func (a *Animation) Opacity() *PropertyAnimator { return &a.opacity }

// IsActive reports whether any property is still running.
func (a *Animation) IsActive() bool {
	return a.translationX.running || a.translationY.running || a.rotation.running ||
		a.scale.running || a.opacity.running
}

// Run steps every running property to now and writes the results into l.
// l.Animated() reflects whether this animation is still active afterwards.
func (a *Animation) Run(l *Layer, now time.Time) {
	if a.translationX.running {
		l.X = roundInt(a.translationX.Step(now))
	}
	if a.translationY.running {
		l.Y = roundInt(a.translationY.Step(now))
	}
	if a.rotation.running {
		l.Rotation = roundInt(a.rotation.Step(now))
	}
	if a.scale.running {
		v := a.scale.Step(now)
		l.ScaleX = v
		l.ScaleY = v
	}
	if a.opacity.running {
		l.Opacity = a.opacity.Step(now)
	}
	l.animated = a.IsActive()
}

// snap writes the start value of every running property into l, so the frame
// drawn right after attaching already shows the from state.
func (a *Animation) snap(l *Layer) {
	if a.translationX.running {
		l.X = roundInt(a.translationX.from)
	}
	if a.translationY.running {
		l.Y = roundInt(a.translationY.from)
	}
	if a.rotation.running {
		l.Rotation = roundInt(a.rotation.from)
	}
	if a.scale.running {
		l.ScaleX = a.scale.from
		l.ScaleY = a.scale.from
	}
	if a.opacity.running {
		l.Opacity = a.opacity.from
	}
}

func roundInt(v float32) int {
	return int(math.Round(float64(v)))
}
