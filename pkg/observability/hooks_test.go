package observability

import "testing"

type recordingPhaseHooks struct {
	enters  int
	repeats int
}

func (r *recordingPhaseHooks) OnEnter(prev, next string, loops int) { r.enters++ }
func (r *recordingPhaseHooks) OnRepeat(phase string)                { r.repeats++ }

func TestDefaultsAreNoops(t *testing.T) {
	Reset()

	// Must not panic with nothing registered.
	Phase().OnEnter("resting", "diagnostic", 0)
	Phase().OnRepeat("resting")
	Timeline().OnStart("h1", 3, 1)
	Timeline().OnCancel("h1")
	Solver().OnSettle(120)
	Solver().OnDragStart("n1")
	Solver().OnDragEnd("n1")
}

func TestSetAndRetrieve(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPhaseHooks{}
	SetPhaseHooks(rec)

	Phase().OnEnter("resting", "diagnostic", 2)
	Phase().OnRepeat("diagnostic")

	if rec.enters != 1 || rec.repeats != 1 {
		t.Errorf("recorded enters/repeats = %d/%d, want 1/1", rec.enters, rec.repeats)
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetPhaseHooks(nil)
	if Phase() == nil {
		t.Fatal("Phase() = nil after SetPhaseHooks(nil)")
	}
}

func TestReset(t *testing.T) {
	SetPhaseHooks(&recordingPhaseHooks{})
	Reset()
	if _, ok := Phase().(NoopPhaseHooks); !ok {
		t.Errorf("Phase() after Reset = %T, want NoopPhaseHooks", Phase())
	}
}
