package timeline

import (
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// =============================================================================
// Instructions
// =============================================================================

// Kind discriminates instruction behavior.
type Kind int

// Instruction kinds.
const (
	KindSet   Kind = iota // instantaneous assignment at the offset
	KindTween             // eased interpolation from current value
	KindLoop              // infinite repeat, optionally yoyo
)

// Instruction is one scheduled mutation. Exactly one of Num, Hex or Text is
// meaningful, matching the attribute's value kind.
type Instruction struct {
	Target   string
	Attr     scene.Attr
	Kind     Kind
	At       float64 // start offset in seconds, relative to timeline start
	Duration float64 // tween duration or loop one-way duration
	Easing   Easing

	Num  float64 // numeric target value
	Hex  string  // color target value
	Text string  // text value, set-only

	Color   bool    // interpolate Hex as a color rather than assigning Text
	TextSet bool    // assign Text verbatim
	From    float64 // loop start value (loops do not sample current state)
	Yoyo    bool    // ping-pong instead of restarting each cycle
}

// Arrival returns the instant a mutation scheduled at the given offset and
// duration completes. Effects that must trigger exactly on arrival are
// scheduled at this value rather than re-deriving it, so they cannot drift.
func Arrival(at, duration float64) float64 {
	return at + duration
}

// =============================================================================
// Timeline Builder
// =============================================================================

// Timeline is an ordered set of instructions. Build it with the methods
// below, then hand it to [Player.Start]. Declaration order is execution
// order for instructions sharing a start offset.
type Timeline struct {
	instrs []Instruction
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Len returns the number of scheduled instructions.
func (t *Timeline) Len() int { return len(t.instrs) }

// Instructions exposes the schedule for inspection. Callers must not mutate
// the returned slice.
func (t *Timeline) Instructions() []Instruction { return t.instrs }

// Set schedules an instantaneous numeric assignment at the offset.
func (t *Timeline) Set(target string, attr scene.Attr, v, at float64) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindSet, At: at, Num: v,
	})
	return t
}

// SetColor schedules an instantaneous color assignment at the offset.
func (t *Timeline) SetColor(target string, attr scene.Attr, hex string, at float64) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindSet, At: at, Hex: hex, Color: true,
	})
	return t
}

// SetText schedules an instantaneous text assignment at the offset. Used for
// attributes that cannot be smoothly interpolated, like a dash-pattern reset.
func (t *Timeline) SetText(target string, attr scene.Attr, s string, at float64) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindSet, At: at, Text: s, TextSet: true,
	})
	return t
}

// Tween schedules an eased numeric interpolation from the attribute's current
// value to the target value over the duration.
func (t *Timeline) Tween(target string, attr scene.Attr, to, at, dur float64, e Easing) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindTween, At: at, Duration: dur, Easing: e, Num: to,
	})
	return t
}

// TweenColor schedules an eased color interpolation from the attribute's
// current color to the target color over the duration.
func (t *Timeline) TweenColor(target string, attr scene.Attr, hex string, at, dur float64, e Easing) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindTween, At: at, Duration: dur, Easing: e,
		Hex: hex, Color: true,
	})
	return t
}

// Loop schedules an infinite numeric oscillation between from and to, one-way
// duration dur, starting at the offset. With yoyo the value ping-pongs;
// without it each cycle restarts at from, which is what a marching dash
// offset wants. The loop belongs to the handle that starts the timeline, so
// cancellation always reaches it.
func (t *Timeline) Loop(target string, attr scene.Attr, from, to, dur float64, e Easing, at float64, yoyo bool) *Timeline {
	t.instrs = append(t.instrs, Instruction{
		Target: target, Attr: attr, Kind: KindLoop, At: at, Duration: dur, Easing: e,
		From: from, Num: to, Yoyo: yoyo,
	})
	return t
}

// LoopEach spawns one loop per target, staggering each start by step. The
// stagger turns a simultaneous collection effect into a sequential one.
func (t *Timeline) LoopEach(targets []string, attr scene.Attr, from, to, dur float64, e Easing, at, step float64, yoyo bool) *Timeline {
	for i, target := range targets {
		t.Loop(target, attr, from, to, dur, e, at+float64(i)*step, yoyo)
	}
	return t
}
