package scene

import "testing"

func TestHash01Deterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		a := Hash01(i, i*7)
		b := Hash01(i, i*7)
		if a != b {
			t.Fatalf("Hash01(%d,%d) not stable: %v != %v", i, i*7, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("Hash01(%d,%d) = %v, want [0,1)", i, i*7, a)
		}
	}
}

func TestHash01OrderSensitive(t *testing.T) {
	if Hash01(1, 2) == Hash01(2, 1) {
		t.Error("Hash01 should be order-sensitive")
	}
}

func TestHash01Spreads(t *testing.T) {
	// Not a statistical test, just a sanity check that values vary.
	seen := make(map[float64]bool)
	for i := 0; i < 100; i++ {
		seen[Hash01(i)] = true
	}
	if len(seen) < 95 {
		t.Errorf("only %d distinct values out of 100", len(seen))
	}
}

func TestHashBoolDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		if HashBool(0.5, i) != HashBool(0.5, i) {
			t.Fatalf("HashBool(%d) not stable", i)
		}
	}
	if HashBool(0, 3) {
		t.Error("HashBool with p=0 should always be false")
	}
	if !HashBool(1.1, 3) {
		t.Error("HashBool with p>1 should always be true")
	}
}
