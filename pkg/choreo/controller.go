package choreo

import (
	"sort"

	"github.com/finnvoss/glowgraph/pkg/observability"
	"github.com/finnvoss/glowgraph/pkg/physics"
	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

// Controller owns the phase state machine and the single current animation
// handle. All methods run on the host loop's logical thread.
type Controller struct {
	graph  *scene.Graph
	stage  *scene.Stage
	sim    *physics.Simulation
	player *timeline.Player
	cfg    *scene.Config

	current Phase
	handle  *timeline.Handle
}

// NewController wires the controller. No phase is active until the first
// EnterPhase call; callers normally enter [PhaseResting] immediately.
func NewController(g *scene.Graph, stage *scene.Stage, sim *physics.Simulation, player *timeline.Player, cfg *scene.Config) *Controller {
	return &Controller{
		graph:  g,
		stage:  stage,
		sim:    sim,
		player: player,
		cfg:    cfg,
	}
}

// Current returns the active phase.
func (c *Controller) Current() Phase { return c.current }

// Handle returns the running animation handle, if any.
func (c *Controller) Handle() *timeline.Handle { return c.handle }

// EnterPhase transitions the diagram to the named phase. Re-entering the
// active phase is a no-op: no cancellation, no restart, handle unchanged.
// Any other transition cancels the previous handle in full, every spawned
// repeating loop included, before the new phase's first mutation can land,
// then builds the new timeline from live geometry. The returned error is
// only for names outside the variant's vocabulary; transitions themselves
// cannot fail.
func (c *Controller) EnterPhase(p Phase) error {
	if _, err := ParsePhase(c.graph.Variant, string(p)); err != nil {
		return err
	}
	if p == c.current {
		observability.Phase().OnRepeat(string(p))
		return nil
	}

	cancelledLoops := 0
	if c.handle != nil {
		cancelledLoops = c.handle.Loops()
		observability.Timeline().OnCancel(c.handle.ID.String())
		c.handle.Cancel()
	}

	prev := c.current
	// Record the new phase before the timeline starts so a rapid follow-up
	// transition cancels the right handle even mid-build.
	c.current = p

	tl := c.build(p)
	c.handle = c.player.Start(tl)

	observability.Timeline().OnStart(c.handle.ID.String(), tl.Len(), c.handle.Loops())
	observability.Phase().OnEnter(string(prev), string(p), cancelledLoops)
	return nil
}

// build dispatches to the per-phase timeline builders.
func (c *Controller) build(p Phase) *timeline.Timeline {
	switch p {
	case PhaseDiagnostic:
		return c.buildDiagnostic()
	case PhaseRepair:
		return c.buildRepair()
	case PhaseLearning:
		return c.buildLearning()
	case PhaseSolidified:
		return c.buildSolidified()
	default:
		return c.buildResting()
	}
}

// =============================================================================
// Live Geometry
// =============================================================================

// nodePos resolves a node's live position: the shared stage store first, the
// solver second, the static seed last. The fallback keeps transitions total:
// unresolvable geometry degrades, it never aborts.
func (c *Controller) nodePos(id string) scene.Point {
	if p, ok := c.stage.Position(id); ok {
		return p
	}
	if p, ok := c.sim.Position(id); ok {
		return p
	}
	if n, ok := c.graph.Node(id); ok {
		return n.Seed
	}
	return scene.Point{}
}

// rippleOrder returns node IDs sorted by ascending distance from ref, with
// each node's start delay. Delays grow with sort position, so sorting by
// distance always yields a non-decreasing delay sequence: the outward
// ripple is a consequence of the ordering, not of per-node timing math.
func (c *Controller) rippleOrder(ref scene.Point) ([]string, []float64) {
	type entry struct {
		id   string
		dist float64
	}
	entries := make([]entry, len(c.graph.Nodes))
	for i, n := range c.graph.Nodes {
		entries[i] = entry{id: n.ID, dist: c.nodePos(n.ID).Dist(ref)}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].dist < entries[j].dist })

	ids := make([]string, len(entries))
	delays := make([]float64, len(entries))
	for i, e := range entries {
		ids[i] = e.id
		delays[i] = float64(i) * c.cfg.Phases.RippleStep
	}
	return ids, delays
}

// rippleCenter is the reference point for the solidify ripple: the repaired
// edge's midpoint in the gap-repair narrative, the diagram center otherwise.
func (c *Controller) rippleCenter() scene.Point {
	if c.graph.Variant == scene.VariantGapRepair {
		if e, ok := c.graph.BrokenEdge(); ok {
			return c.nodePos(e.From).Midpoint(c.nodePos(e.To))
		}
	}
	return scene.Point{X: c.cfg.Forces.Width / 2, Y: c.cfg.Forces.Height / 2}
}
