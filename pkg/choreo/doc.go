// Package choreo maps narrative phases to timelines.
//
// The [Controller] is a small state machine over a closed phase vocabulary.
// Exactly one phase is active at a time and every phase is reachable from
// every other. Entering the active phase again is a no-op. Entering a
// different phase always tears the previous phase down in full before the new
// one starts: the controller exclusively owns at most one running
// [timeline.Handle], and acquiring a new one is a transactional swap. Cancel
// the old handle synchronously, loops included; sample live geometry; build
// and start the replacement. No two phases' repeating effects ever coexist.
//
// Phase timelines are built from the solver's current positions, never from
// the static seed data, so a drag-displaced layout choreographs correctly.
// When a position cannot be resolved the builder falls back to the configured
// seed value rather than aborting; no phase transition can fail.
package choreo
