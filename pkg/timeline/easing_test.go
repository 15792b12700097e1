package timeline

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	curves := []Easing{EaseLinear, EaseIn, EaseOut, EaseInOut, EaseOutBack, EaseSine}
	for _, e := range curves {
		if got := Ease(e, 0); got != 0 {
			t.Errorf("Ease(%s, 0) = %v, want 0", e, got)
		}
		if got := Ease(e, 1); got != 1 {
			t.Errorf("Ease(%s, 1) = %v, want 1", e, got)
		}
		if got := Ease(e, -0.5); got != 0 {
			t.Errorf("Ease(%s, -0.5) = %v, want clamped 0", e, got)
		}
		if got := Ease(e, 1.5); got != 1 {
			t.Errorf("Ease(%s, 1.5) = %v, want clamped 1", e, got)
		}
	}
}

func TestEaseShapes(t *testing.T) {
	// Cubic in starts slow, cubic out starts fast.
	if Ease(EaseIn, 0.25) >= 0.25 {
		t.Error("EaseIn should lag linear early on")
	}
	if Ease(EaseOut, 0.25) <= 0.25 {
		t.Error("EaseOut should lead linear early on")
	}

	// In-out is symmetric around the midpoint.
	if got := Ease(EaseInOut, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", got)
	}

	// Out-back overshoots past the target before settling.
	overshot := false
	for p := 0.5; p < 1; p += 0.01 {
		if Ease(EaseOutBack, p) > 1 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("EaseOutBack never exceeded 1; overshoot is its contract")
	}

	// Sine is smooth and monotone.
	prev := 0.0
	for p := 0.05; p <= 0.95; p += 0.05 {
		cur := Ease(EaseSine, p)
		if cur < prev {
			t.Fatalf("EaseSine not monotone at %v", p)
		}
		prev = cur
	}
}

func TestEaseUnknownFallsBackToLinear(t *testing.T) {
	if got := Ease(Easing("wobble"), 0.3); got != 0.3 {
		t.Errorf("unknown easing = %v, want linear 0.3", got)
	}
}
