package bloom

import (
	"math"
	"sort"

	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

// edgeLag is how long an edge waits after the later of its endpoints has
// started revealing.
const edgeLag = 0.12

// ringScale is the resting ring radius relative to an element's dot size.
const ringScale = 1.6

// Hash key salts. Each concern draws from its own slice of the hash space so
// changing one cannot reshuffle another.
const (
	saltNoise   = 7
	saltNode    = 11
	saltEdge    = 13
	saltBreathe = 17
)

// Reveal schedules one element's entrance.
type Reveal struct {
	ID string
	At float64
}

// Plan is a complete reveal schedule: node entrances ascending by offset,
// edge entrances trailing their endpoints, and the subset that keeps
// breathing after the sequence settles.
type Plan struct {
	Nodes     []Reveal
	Edges     []Reveal
	Breathing map[string]bool
}

// =============================================================================
// Planning
// =============================================================================

// Plan orders the layout's nodes by distance from the layout center plus a
// small deterministic noise term, then maps each sort position through a
// power curve onto the reveal span. The noise breaks up perfectly concentric
// rings without breaking reproducibility; the curve front-loads the inner
// elements so the bloom opens fast and trails off.
func (l *Layout) Plan(cfg *scene.Config) *Plan {
	type scored struct {
		id    string
		score float64
	}
	nodes := make([]scored, len(l.Nodes))
	for i, n := range l.Nodes {
		noise := jitter(cfg.Bloom.Jitter, i, saltNoise)
		nodes[i] = scored{id: n.ID, score: n.Pos.Dist(l.Center) + noise}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].score < nodes[j].score })

	p := &Plan{Breathing: make(map[string]bool)}
	span := float64(len(nodes) - 1)
	starts := make(map[string]float64, len(nodes))
	for i, n := range nodes {
		at := 0.0
		if span > 0 {
			at = math.Pow(float64(i)/span, cfg.Bloom.RevealCurve) * cfg.Bloom.RevealSpan
		}
		p.Nodes = append(p.Nodes, Reveal{ID: n.id, At: at})
		starts[n.id] = at
	}

	for _, e := range l.Edges {
		at := math.Max(starts[e.From], starts[e.To]) + edgeLag
		p.Edges = append(p.Edges, Reveal{ID: e.ID, At: at})
	}

	for i, n := range l.Nodes {
		if scene.HashBool(cfg.Bloom.BreatheFraction, i, saltNode, saltBreathe) {
			p.Breathing[n.ID] = true
		}
	}
	for i, e := range l.Edges {
		if scene.HashBool(cfg.Bloom.BreatheFraction, i, saltEdge, saltBreathe) {
			p.Breathing[e.ID] = true
		}
	}
	return p
}

// =============================================================================
// Timeline Assembly
// =============================================================================

// BuildTimeline turns a plan into one timeline: per-node overshoot pop plus
// an expand-then-settle ring ripple, per-edge fade-in, and the breathing
// subset's loops starting after the whole sequence has settled. Elements
// outside the subset simply freeze at rest values.
func (l *Layout) BuildTimeline(plan *Plan, cfg *scene.Config) *timeline.Timeline {
	ph := cfg.Phases
	look := cfg.Look
	tl := timeline.New()

	for _, r := range plan.Nodes {
		n, ok := l.Node(r.ID)
		if !ok {
			continue
		}
		rest := n.Size * ringScale
		tl.Tween(n.ID, scene.AttrDotRadius, n.Size, r.At, ph.BounceDuration, timeline.EaseOutBack)
		tl.Tween(n.ID, scene.AttrDotOpacity, 1, r.At, ph.BounceDuration, timeline.EaseOut)
		tl.Set(n.ID, scene.AttrRingRadius, rest*2.2, r.At)
		tl.Set(n.ID, scene.AttrRingOpacity, 0.8, r.At)
		tl.Tween(n.ID, scene.AttrRingRadius, rest, r.At, ph.BurstDuration, timeline.EaseOut)
		tl.Tween(n.ID, scene.AttrRingOpacity, look.RingOpacity, r.At, ph.BurstDuration, timeline.EaseOut)
	}
	for _, r := range plan.Edges {
		tl.Tween(r.ID, scene.AttrOpacity, look.EdgeOpacity, r.At, ph.DimDuration, timeline.EaseOut)
	}

	settled := cfg.Bloom.RevealSpan + edgeLag + ph.BurstDuration
	for i, n := range l.Nodes {
		if !plan.Breathing[n.ID] {
			continue
		}
		rest := n.Size * ringScale
		off := settled + scene.Hash01(i, saltNode)*ph.BreathePeriod
		tl.Loop(n.ID, scene.AttrRingRadius, rest, rest*ph.BreatheScale,
			ph.BreathePeriod, timeline.EaseSine, off, true)
		tl.Loop(n.ID, scene.AttrRingOpacity, look.RingOpacity*0.6, look.RingOpacity,
			ph.BreathePeriod, timeline.EaseSine, off, true)
	}
	for i, e := range l.Edges {
		if !plan.Breathing[e.ID] {
			continue
		}
		off := settled + scene.Hash01(i, saltEdge)*ph.BreathePeriod
		tl.Loop(e.ID, scene.AttrOpacity, look.EdgeOpacity*0.55, look.EdgeOpacity,
			ph.BreathePeriod, timeline.EaseSine, off, true)
	}
	return tl
}
