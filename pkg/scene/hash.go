package scene

import "math"

// hashScale is the classic sine-hash multiplier; the fractional part of
// sin(n) * hashScale spreads integer keys across [0,1) well enough for
// decorative jitter.
const hashScale = 43758.5453123

// Hash01 maps integer keys to a deterministic pseudo-random value in [0,1).
// It is a pure function of its inputs with no stateful generator involved,
// so everything derived from it (jitter, stagger offsets, subset membership)
// is reproducible and testable. Keys are combined order-sensitively, so
// Hash01(1,2) and Hash01(2,1) differ.
func Hash01(keys ...int) float64 {
	n := 1
	for _, k := range keys {
		n = n*31 + k
	}
	v := math.Sin(float64(n)) * hashScale
	f := v - math.Floor(v)
	return f
}

// HashBool maps integer keys to a deterministic boolean that is true with
// roughly the given probability.
func HashBool(p float64, keys ...int) bool {
	return Hash01(keys...) < p
}
