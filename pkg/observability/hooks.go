// Package observability provides hooks for instrumenting the engine.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about phase transitions, timeline lifecycle,
// and solver activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core engine dependency-free from observability frameworks
//   - Allows different backends (loggers, metrics, recorders)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPhaseHooks(&myPhaseHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks to emit events:
//
//	observability.Phase().OnEnter(prev, next, loops)
package observability

import "sync"

// =============================================================================
// Phase Hooks
// =============================================================================

// PhaseHooks receives events from the phase controller.
type PhaseHooks interface {
	// OnEnter records a completed phase transition. cancelledLoops is the
	// number of repeating animations torn down with the previous handle.
	OnEnter(prev, next string, cancelledLoops int)

	// OnRepeat records an idempotent re-entry that performed no work.
	OnRepeat(phase string)
}

// =============================================================================
// Timeline Hooks
// =============================================================================

// TimelineHooks receives events from the animation player.
type TimelineHooks interface {
	// OnStart records a started timeline.
	OnStart(handleID string, instructions, loops int)

	// OnCancel records a cancelled handle.
	OnCancel(handleID string)
}

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from the layout solver.
type SolverHooks interface {
	// OnSettle records the solver going idle after ticks of activity.
	OnSettle(ticks int)

	// OnDragStart records a node pin.
	OnDragStart(nodeID string)

	// OnDragEnd records a pin release.
	OnDragEnd(nodeID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPhaseHooks is a no-op implementation of PhaseHooks.
type NoopPhaseHooks struct{}

func (NoopPhaseHooks) OnEnter(string, string, int) {}
func (NoopPhaseHooks) OnRepeat(string)             {}

// NoopTimelineHooks is a no-op implementation of TimelineHooks.
type NoopTimelineHooks struct{}

func (NoopTimelineHooks) OnStart(string, int, int) {}
func (NoopTimelineHooks) OnCancel(string)          {}

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnSettle(int)       {}
func (NoopSolverHooks) OnDragStart(string) {}
func (NoopSolverHooks) OnDragEnd(string)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	phaseHooks    PhaseHooks    = NoopPhaseHooks{}
	timelineHooks TimelineHooks = NoopTimelineHooks{}
	solverHooks   SolverHooks   = NoopSolverHooks{}
	hooksMu       sync.RWMutex
)

// SetPhaseHooks registers custom phase hooks.
// This should be called once at application startup before the engine runs.
func SetPhaseHooks(h PhaseHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		phaseHooks = h
	}
}

// SetTimelineHooks registers custom timeline hooks.
// This should be called once at application startup before the engine runs.
func SetTimelineHooks(h TimelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		timelineHooks = h
	}
}

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before the engine runs.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// Phase returns the registered phase hooks.
func Phase() PhaseHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return phaseHooks
}

// Timeline returns the registered timeline hooks.
func Timeline() TimelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return timelineHooks
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	phaseHooks = NoopPhaseHooks{}
	timelineHooks = NoopTimelineHooks{}
	solverHooks = NoopSolverHooks{}
}
