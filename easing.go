package lumen

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// EasingFunction names an interpolation curve.
type EasingFunction uint8

const (
	Linear EasingFunction = iota
	Step
	EaseIn
	EaseOut
	EaseInOut
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
)

// TimingFunction is the CoreAnimation name for an easing curve.
type TimingFunction = EasingFunction

var easingNames = [...]string{
	Linear:         "Linear",
	Step:           "Step",
	EaseIn:         "EaseIn",
	EaseOut:        "EaseOut",
	EaseInOut:      "EaseInOut",
	EaseInQuad:     "EaseInQuad",
	EaseOutQuad:    "EaseOutQuad",
	EaseInOutQuad:  "EaseInOutQuad",
	EaseInCubic:    "EaseInCubic",
	EaseOutCubic:   "EaseOutCubic",
	EaseInOutCubic: "EaseInOutCubic",
	EaseInQuart:    "EaseInQuart",
	EaseOutQuart:   "EaseOutQuart",
	EaseInOutQuart: "EaseInOutQuart",
	EaseInQuint:    "EaseInQuint",
	EaseOutQuint:   "EaseOutQuint",
	EaseInOutQuint: "EaseInOutQuint",
}

// EasingFunctions lists every supported curve in declaration order.
func EasingFunctions() []EasingFunction {
	out := make([]EasingFunction, len(easingNames))
	for i := range easingNames {
		out[i] = EasingFunction(i)
	}
	return out
}

func (e EasingFunction) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return "Linear"
}

// ParseEasingFunction looks up a curve by name, ignoring case.
func ParseEasingFunction(name string) (EasingFunction, bool) {
	for i, n := range easingNames {
		if strings.EqualFold(n, name) {
			return EasingFunction(i), true
		}
	}
	return Linear, false
}

// tweenFunc maps the curve onto a gween easing equation. The unsuffixed
// EaseIn/EaseOut/EaseInOut curves use the sine family.
func (e EasingFunction) tweenFunc() ease.TweenFunc {
	switch e {
	case Step:
		return stepEase
	case EaseIn:
		return ease.InSine
	case EaseOut:
		return ease.OutSine
	case EaseInOut:
		return ease.InOutSine
	case EaseInQuad:
		return ease.InQuad
	case EaseOutQuad:
		return ease.OutQuad
	case EaseInOutQuad:
		return ease.InOutQuad
	case EaseInCubic:
		return ease.InCubic
	case EaseOutCubic:
		return ease.OutCubic
	case EaseInOutCubic:
		return ease.InOutCubic
	case EaseInQuart:
		return ease.InQuart
	case EaseOutQuart:
		return ease.OutQuart
	case EaseInOutQuart:
		return ease.InOutQuart
	case EaseInQuint:
		return ease.InQuint
	case EaseOutQuint:
		return ease.OutQuint
	case EaseInOutQuint:
		return ease.InOutQuint
	default:
		return ease.Linear
	}
}

// stepEase jumps from b to b+c at the halfway point.
func stepEase(t, b, c, d float32) float32 {
	if t < d/2 {
		return b
	}
	return b + c
}

// Ease maps the normalized time t through the curve and interpolates between
// from and to. t is not clamped: values outside [0, 1] extrapolate by the
// curve's formula. t == 1 always yields to exactly.
func Ease(kind EasingFunction, from, to, t float32) float32 {
	if t == 1 {
		return to
	}
	return kind.tweenFunc()(t, from, to-from, 1)
}
