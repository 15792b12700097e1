package choreo

import (
	"github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// Phase is one discrete named narrative state of the diagram.
type Phase string

// The closed phase vocabulary. Resting and solidified are shared; the two
// active middle states depend on the narrative variant.
const (
	PhaseResting    Phase = "resting"
	PhaseDiagnostic Phase = "diagnostic"
	PhaseRepair     Phase = "repair"   // gap-repair variant only
	PhaseLearning   Phase = "learning" // known-unknown variant only
	PhaseSolidified Phase = "solidified"
)

// Phases returns the phase vocabulary for a variant, in narrative order.
func Phases(v scene.Variant) []Phase {
	if v == scene.VariantKnownUnknown {
		return []Phase{PhaseResting, PhaseDiagnostic, PhaseLearning, PhaseSolidified}
	}
	return []Phase{PhaseResting, PhaseDiagnostic, PhaseRepair, PhaseSolidified}
}

// ParsePhase resolves a phase name against a variant's vocabulary. Loosely
// typed phase names stop here; past this point phases are closed enum values.
func ParsePhase(v scene.Variant, name string) (Phase, error) {
	for _, p := range Phases(v) {
		if string(p) == name {
			return p, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidPhase, "no phase %q in variant %q", name, v)
}
