package physics

import (
	"math"

	"github.com/finnvoss/glowgraph/pkg/observability"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// pointerWarm is the fraction of the starting energy the solver holds while
// the pointer is inside the viewport.
const pointerWarm = 0.3

// minForceDist bounds the repulsion denominator away from zero.
const minForceDist = 1.0

// Simulation is the annealed force-directed solver for one graph. All calls
// happen on the host loop's single logical thread.
type Simulation struct {
	graph *scene.Graph
	stage *scene.Stage
	cfg   scene.ForcesConfig

	center scene.Point
	pos    []scene.Point // parallel to graph.Nodes
	vel    []scene.Point
	idx    map[string]int

	alpha   float64
	pinned  map[string]scene.Point
	pointer *scene.Point

	activeTicks int // steps since the solver last settled
}

// New seeds the solver from the graph's static positions.
func New(g *scene.Graph, stage *scene.Stage, cfg scene.ForcesConfig) *Simulation {
	s := &Simulation{
		graph:  g,
		stage:  stage,
		cfg:    cfg,
		center: scene.Point{X: cfg.Width / 2, Y: cfg.Height / 2},
		pos:    make([]scene.Point, len(g.Nodes)),
		vel:    make([]scene.Point, len(g.Nodes)),
		idx:    make(map[string]int, len(g.Nodes)),
		alpha:  cfg.AlphaStart,
		pinned: make(map[string]scene.Point),
	}
	for i, n := range g.Nodes {
		s.pos[i] = n.Seed
		s.idx[n.ID] = i
	}
	return s
}

// Alpha returns the current solver energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Idle reports whether the solver has settled and nothing perturbs it.
func (s *Simulation) Idle() bool {
	return s.alpha < s.cfg.AlphaMin && len(s.pinned) == 0 && s.pointer == nil
}

// Reheat restores the starting energy, waking a settled layout.
func (s *Simulation) Reheat() { s.alpha = s.cfg.AlphaStart }

// Position returns the live position of a node.
func (s *Simulation) Position(id string) (scene.Point, bool) {
	i, ok := s.idx[id]
	if !ok {
		return scene.Point{}, false
	}
	return s.pos[i], true
}

// Positions returns a snapshot of all live positions keyed by node ID.
func (s *Simulation) Positions() map[string]scene.Point {
	out := make(map[string]scene.Point, len(s.pos))
	for id, i := range s.idx {
		out[id] = s.pos[i]
	}
	return out
}

// =============================================================================
// Perturbation Sources
// =============================================================================

// StartDrag pins a node. While pinned, forces no longer move it and the
// solver energy is held elevated.
func (s *Simulation) StartDrag(id string) {
	i, ok := s.idx[id]
	if !ok {
		return
	}
	s.pinned[id] = s.pos[i]
	s.vel[i] = scene.Point{}
	observability.Solver().OnDragStart(id)
}

// UpdateDrag moves a pinned node to pointer-derived coordinates.
func (s *Simulation) UpdateDrag(id string, p scene.Point) {
	if _, ok := s.pinned[id]; !ok {
		return
	}
	s.pinned[id] = s.clamp(p)
}

// EndDrag releases the pin. The node resumes force-driven updates on the next
// tick and the energy decays normally again.
func (s *Simulation) EndDrag(id string) {
	if _, ok := s.pinned[id]; !ok {
		return
	}
	delete(s.pinned, id)
	observability.Solver().OnDragEnd(id)
}

// SetPointer marks the pointer present at p. Nearby nodes are attracted each
// tick while it stays set.
func (s *Simulation) SetPointer(p scene.Point) {
	pt := p
	s.pointer = &pt
}

// ClearPointer marks the pointer gone; the solver cools back down.
func (s *Simulation) ClearPointer() { s.pointer = nil }

// =============================================================================
// Tick
// =============================================================================

// Tick advances the solver one step and publishes positions and edge
// endpoints to the stage. It is cheap when settled: force computation is
// skipped entirely until a perturbation re-warms the energy.
func (s *Simulation) Tick() {
	if len(s.pinned) > 0 && s.alpha < s.cfg.DragAlpha {
		s.alpha = s.cfg.DragAlpha
	}
	if s.pointer != nil {
		if warm := s.cfg.AlphaStart * pointerWarm; s.alpha < warm {
			s.alpha = warm
		}
	}

	if s.alpha >= s.cfg.AlphaMin {
		s.step()
		s.activeTicks++
		if len(s.pinned) == 0 {
			s.alpha *= 1 - s.cfg.AlphaDecay
			if s.alpha < s.cfg.AlphaMin {
				observability.Solver().OnSettle(s.activeTicks)
				s.activeTicks = 0
			}
		}
	}

	s.publish()
}

// step runs one force pass.
func (s *Simulation) step() {
	n := len(s.pos)
	force := make([]scene.Point, n)

	// Pairwise repulsion, bounded to prevent singularities.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.pos[i].X - s.pos[j].X
			dy := s.pos[i].Y - s.pos[j].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < minForceDist {
				dist = minForceDist
			}
			f := s.cfg.Repulsion / (dist * dist)
			fx := dx / dist * f
			fy := dy / dist * f
			force[i].X += fx
			force[i].Y += fy
			force[j].X -= fx
			force[j].Y -= fy
		}
	}

	// Spring per edge toward the rest length.
	for _, e := range s.graph.Edges {
		a := s.idx[e.From]
		b := s.idx[e.To]
		dx := s.pos[b].X - s.pos[a].X
		dy := s.pos[b].Y - s.pos[a].Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minForceDist {
			continue
		}
		f := s.cfg.SpringStrength * (dist - s.cfg.SpringLength)
		fx := dx / dist * f
		fy := dy / dist * f
		force[a].X += fx
		force[a].Y += fy
		force[b].X -= fx
		force[b].Y -= fy
	}

	// Uniform centering.
	for i := 0; i < n; i++ {
		force[i].X += (s.center.X - s.pos[i].X) * s.cfg.Centering
		force[i].Y += (s.center.Y - s.pos[i].Y) * s.cfg.Centering
	}

	// Pointer attraction: a velocity nudge scaled by remaining distance and
	// current energy.
	if s.pointer != nil {
		for i := 0; i < n; i++ {
			dx := s.pointer.X - s.pos[i].X
			dy := s.pointer.Y - s.pos[i].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < minForceDist || dist > s.cfg.PointerRadius {
				continue
			}
			pull := (s.cfg.PointerRadius - dist) / s.cfg.PointerRadius * s.cfg.PointerStrength * s.alpha
			s.vel[i].X += dx / dist * pull * dist
			s.vel[i].Y += dy / dist * pull * dist
		}
	}

	// Integrate, honoring pins.
	for i := 0; i < n; i++ {
		id := s.graph.Nodes[i].ID
		if pin, ok := s.pinned[id]; ok {
			s.pos[i] = pin
			s.vel[i] = scene.Point{}
			continue
		}
		s.vel[i].X = (s.vel[i].X + force[i].X*s.alpha) * s.cfg.Damping
		s.vel[i].Y = (s.vel[i].Y + force[i].Y*s.alpha) * s.cfg.Damping
		s.pos[i].X += s.vel[i].X
		s.pos[i].Y += s.vel[i].Y
	}

	// Minimum separation, positional.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.pos[j].X - s.pos[i].X
			dy := s.pos[j].Y - s.pos[i].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= s.cfg.CollideRadius || dist < 1e-9 {
				continue
			}
			overlap := (s.cfg.CollideRadius - dist) / 2
			ox := dx / dist * overlap
			oy := dy / dist * overlap
			_, iPinned := s.pinned[s.graph.Nodes[i].ID]
			_, jPinned := s.pinned[s.graph.Nodes[j].ID]
			if !iPinned {
				s.pos[i].X -= ox
				s.pos[i].Y -= oy
			}
			if !jPinned {
				s.pos[j].X += ox
				s.pos[j].Y += oy
			}
		}
	}

	for i := 0; i < n; i++ {
		if _, ok := s.pinned[s.graph.Nodes[i].ID]; ok {
			continue
		}
		s.pos[i] = s.clamp(s.pos[i])
	}
}

// publish writes live positions and derived edge endpoints to the stage.
// Unmounted elements are skipped by the stage itself.
func (s *Simulation) publish() {
	for i, n := range s.graph.Nodes {
		s.stage.SetNodePosition(n.ID, s.pos[i])
	}
	for _, e := range s.graph.Edges {
		s.stage.SetEdgeEndpoints(e.ID, s.pos[s.idx[e.From]], s.pos[s.idx[e.To]])
	}
}

// clamp keeps a point inside the padded bounding rectangle.
func (s *Simulation) clamp(p scene.Point) scene.Point {
	return scene.Point{
		X: math.Min(math.Max(p.X, s.cfg.Padding), s.cfg.Width-s.cfg.Padding),
		Y: math.Min(math.Max(p.Y, s.cfg.Padding), s.cfg.Height-s.cfg.Padding),
	}
}
