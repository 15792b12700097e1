package scene

import (
	"math"

	"github.com/finnvoss/glowgraph/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Narrative variants. The variant selects the phase vocabulary and the
// role-flag schema; a graph never mixes both schemas.
const (
	VariantGapRepair    Variant = "gap-repair"
	VariantKnownUnknown Variant = "known-unknown"
)

// Node categories, used only for palette lookup.
const (
	CategoryConcept  Category = "concept"
	CategorySkill    Category = "skill"
	CategoryTool     Category = "tool"
	CategoryPractice Category = "practice"
)

// Edge classifications derived from endpoint role flags.
const (
	EdgeClassKnown    EdgeClass = "known"
	EdgeClassLearning EdgeClass = "learning"
	EdgeClassBroken   EdgeClass = "broken"
)

// MarkerID is the element ID of the travelling repair marker. The marker is a
// visual prop with no identity in the graph model.
const MarkerID = "__marker__"

// Variant identifies which narrative schema a graph uses.
type Variant string

// Category is the closed node-category enumeration.
type Category string

// EdgeClass is the derived classification of an edge.
type EdgeClass string

// =============================================================================
// Point
// =============================================================================

// Point is a 2-D coordinate.
type Point struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// =============================================================================
// Node
// =============================================================================

// Node is one diagram node. Seed is only the starting position; once the
// physics solver runs, the live position in the [Stage] is authoritative.
type Node struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Seed     Point    `json:"seed"`

	// Gap-repair narrative roles.
	GapSource bool `json:"gap_source,omitempty"`
	GapTarget bool `json:"gap_target,omitempty"`

	// Known/unknown narrative membership.
	Known bool `json:"known,omitempty"`
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two node identities.
type Edge struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Broken bool   `json:"broken,omitempty"`
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the validated static model. Construct with [New]; the node and
// edge sets are read-only for the rest of the session.
type Graph struct {
	Variant Variant
	Nodes   []Node
	Edges   []Edge

	byID map[string]int // node ID → index into Nodes
}

// New validates nodes and edges and returns the constructed graph.
// Referential-integrity violations and role-invariant violations are
// construction-time defects and fail eagerly.
func New(variant Variant, nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		Variant: variant,
		Nodes:   nodes,
		Edges:   edges,
		byID:    make(map[string]int, len(nodes)),
	}

	if variant != VariantGapRepair && variant != VariantKnownUnknown {
		return nil, errors.New(errors.ErrCodeInvalidVariant, "unknown variant %q", variant)
	}

	for i, n := range nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %d has empty ID", i)
		}
		if _, dup := g.byID[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node ID %q", n.ID)
		}
		g.byID[n.ID] = i
	}

	edgeIDs := make(map[string]struct{}, len(edges))
	for i, e := range edges {
		if e.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %d has empty ID", i)
		}
		if _, dup := edgeIDs[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate edge ID %q", e.ID)
		}
		edgeIDs[e.ID] = struct{}{}

		if _, ok := g.byID[e.From]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %s references missing node %s", e.ID, e.From)
		}
		if _, ok := g.byID[e.To]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "edge %s references missing node %s", e.ID, e.To)
		}
	}

	if err := g.validateRoles(); err != nil {
		return nil, err
	}
	return g, nil
}

// validateRoles checks the per-variant role-flag invariants.
func (g *Graph) validateRoles() error {
	var sources, targets, broken, known int
	for _, n := range g.Nodes {
		if n.GapSource {
			sources++
		}
		if n.GapTarget {
			targets++
		}
		if n.Known {
			known++
		}
	}
	for _, e := range g.Edges {
		if e.Broken {
			broken++
		}
	}

	switch g.Variant {
	case VariantGapRepair:
		if known > 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "gap-repair graph must not use known flags")
		}
		if sources != 1 || targets != 1 {
			return errors.New(errors.ErrCodeInvalidGraph,
				"gap-repair graph needs exactly one source and one target, got %d/%d", sources, targets)
		}
		if broken > 1 {
			return errors.New(errors.ErrCodeInvalidGraph, "at most one broken edge allowed, got %d", broken)
		}
		if broken == 1 {
			e, _ := g.BrokenEdge()
			src, dst, _ := g.GapPair()
			if e.From != src.ID || e.To != dst.ID {
				return errors.New(errors.ErrCodeInvalidGraph,
					"broken edge %s must connect the source/target pair", e.ID)
			}
		}
	case VariantKnownUnknown:
		if sources != 0 || targets != 0 || broken != 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "known-unknown graph must not use gap roles")
		}
		if known == 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "known-unknown graph needs a non-empty known subset")
		}
	}
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// GapPair returns the source and target role nodes of a gap-repair graph.
func (g *Graph) GapPair() (src, dst *Node, ok bool) {
	for i := range g.Nodes {
		switch {
		case g.Nodes[i].GapSource:
			src = &g.Nodes[i]
		case g.Nodes[i].GapTarget:
			dst = &g.Nodes[i]
		}
	}
	return src, dst, src != nil && dst != nil
}

// BrokenEdge returns the broken edge, if the graph has one.
func (g *Graph) BrokenEdge() (*Edge, bool) {
	for i := range g.Edges {
		if g.Edges[i].Broken {
			return &g.Edges[i], true
		}
	}
	return nil, false
}

// Classify derives an edge's classification from current role flags.
// It is a pure function: unchanged flags always yield the same class.
// A broken edge is always [EdgeClassBroken]; otherwise both endpoints known
// means [EdgeClassKnown], anything else [EdgeClassLearning]. In the
// gap-repair narrative every unbroken edge is considered known.
func (g *Graph) Classify(e Edge) EdgeClass {
	if e.Broken {
		return EdgeClassBroken
	}
	if g.Variant == VariantGapRepair {
		return EdgeClassKnown
	}
	from, _ := g.Node(e.From)
	to, _ := g.Node(e.To)
	if from != nil && to != nil && from.Known && to.Known {
		return EdgeClassKnown
	}
	return EdgeClassLearning
}
