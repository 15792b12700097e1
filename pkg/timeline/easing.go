package timeline

import "math"

// Easing names an interpolation curve. The vocabulary is closed; unknown
// names fall back to linear.
type Easing string

// Easing curves.
const (
	EaseLinear  Easing = "linear"
	EaseIn      Easing = "in"       // cubic accelerate
	EaseOut     Easing = "out"      // cubic decelerate
	EaseInOut   Easing = "in-out"   // cubic both ends
	EaseOutBack Easing = "out-back" // overshoot then settle, for bounce-ins
	EaseSine    Easing = "sine"     // smooth oscillation, for breathing loops
)

// backOvershoot controls how far out-back swings past the target.
const backOvershoot = 1.70158

// Ease maps progress t in [0,1] through the named curve. Input is clamped;
// out-back may return values above 1 mid-curve, which is the point of it.
func Ease(e Easing, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EaseIn:
		return t * t * t
	case EaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	case EaseOutBack:
		c1 := backOvershoot
		c3 := c1 + 1
		u := t - 1
		return 1 + c3*u*u*u + c1*u*u
	case EaseSine:
		return -(math.Cos(math.Pi*t) - 1) / 2
	default:
		return t
	}
}
