// Package timeline schedules choreographed attribute mutations against stage
// elements and plays them back on host ticks.
//
// A [Timeline] is an ordered set of instructions (instantaneous sets, eased
// tweens, and infinite loops), each anchored at a start offset relative to the
// timeline's start. Starting a timeline on a [Player] returns a [Handle]; a
// handle owns every instruction of its timeline, including spawned loops, and
// cancelling it stops all of them synchronously, freezing attributes at their
// last written value.
//
// # Synchronized arrival
//
// Two mutations that must complete at the same instant are scheduled with the
// identical start offset, duration, and easing curve. The engine makes no
// other alignment attempt; correctness comes purely from sharing those three
// parameters. The instant such a pair completes is its arrival time,
// offset + duration, computed once via [Arrival] and reused for every effect
// that must fire exactly on arrival.
//
// # Ordering
//
// Within one timeline, instructions sharing a start offset execute in the
// order declared, so a later instruction may overwrite an earlier one's
// target at that offset. This last-write-wins behavior is intentional: an
// instantaneous flash set immediately followed by a tween away from it is the
// canonical use.
//
// Mutating a target that is not mounted on the stage is a no-op, not an
// error: the presentation layer may not have mounted it yet.
package timeline
