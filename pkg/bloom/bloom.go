package bloom

import (
	"fmt"
	"math"

	"github.com/finnvoss/glowgraph/pkg/scene"
)

// =============================================================================
// Templates
// =============================================================================

// TemplateEntry is one element of a geometric template. Dist and Offset are
// fractions of the configured petal radius, measured along and perpendicular
// to the petal's angular direction. Size is the element's dot radius.
type TemplateEntry struct {
	Category scene.Category
	Dist     float64
	Offset   float64
	Size     float64
}

// LinkTemplate connects two template entries by index within one petal.
type LinkTemplate struct {
	From, To int
}

// Template bundles the fixed geometry a layout is generated from: a small
// center cluster plus one petal stamped at every angle.
type Template struct {
	Center      []TemplateEntry
	Petal       []TemplateEntry
	PetalLinks  []LinkTemplate
	CenterPivot int // center entry each petal's base connects to
}

// DefaultTemplate returns the compiled-in bloom geometry.
func DefaultTemplate() Template {
	return Template{
		Center: []TemplateEntry{
			{Category: scene.CategoryConcept, Dist: 0, Offset: 0, Size: 9},
			{Category: scene.CategorySkill, Dist: 0.12, Offset: 0.1, Size: 5},
			{Category: scene.CategoryTool, Dist: 0.12, Offset: -0.1, Size: 5},
		},
		Petal: []TemplateEntry{
			{Category: scene.CategorySkill, Dist: 0.35, Offset: 0, Size: 6},
			{Category: scene.CategoryConcept, Dist: 0.62, Offset: 0.12, Size: 5},
			{Category: scene.CategoryPractice, Dist: 0.62, Offset: -0.12, Size: 5},
			{Category: scene.CategoryTool, Dist: 0.92, Offset: 0, Size: 4},
		},
		PetalLinks: []LinkTemplate{
			{From: 0, To: 1},
			{From: 0, To: 2},
			{From: 1, To: 3},
			{From: 2, To: 3},
		},
		CenterPivot: 0,
	}
}

// =============================================================================
// Generated Layout
// =============================================================================

// Element is one generated node.
type Element struct {
	ID       string
	Category scene.Category
	Pos      scene.Point
	Size     float64
}

// Link is one generated edge.
type Link struct {
	ID       string
	From, To string
}

// Layout is a generated bloom: read-only after generation.
type Layout struct {
	Center scene.Point
	Nodes  []Element
	Edges  []Link

	byID map[string]int
}

// Node returns the element with the given ID.
func (l *Layout) Node(id string) (*Element, bool) {
	i, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	return &l.Nodes[i], true
}

// =============================================================================
// Generation
// =============================================================================

// Generate stamps the template around the configured center: the center
// cluster once, then one petal per evenly spaced angle. Every coordinate is
// perturbed by a jitter derived from the element's (petal, entry) indices
// through the deterministic hash, so two calls with the same inputs produce
// bit-identical layouts.
func Generate(tpl Template, cfg *scene.Config) *Layout {
	center := scene.Point{X: cfg.Forces.Width / 2, Y: cfg.Forces.Height / 2}
	l := &Layout{Center: center, byID: make(map[string]int)}

	for j, e := range tpl.Center {
		l.addNode(fmt.Sprintf("core-%d", j), e.Category, scene.Point{
			X: center.X + e.Dist*cfg.Bloom.PetalRadius,
			Y: center.Y + e.Offset*cfg.Bloom.PetalRadius,
		}, e.Size)
	}

	pivot := fmt.Sprintf("core-%d", tpl.CenterPivot)
	for p := 0; p < cfg.Bloom.Petals; p++ {
		angle := 2 * math.Pi * float64(p) / float64(cfg.Bloom.Petals)
		dir := scene.Point{X: math.Cos(angle), Y: math.Sin(angle)}
		perp := scene.Point{X: -dir.Y, Y: dir.X}

		for j, e := range tpl.Petal {
			along := e.Dist*cfg.Bloom.PetalRadius + jitter(cfg.Bloom.Jitter, p, j, 0)
			aside := e.Offset*cfg.Bloom.PetalRadius + jitter(cfg.Bloom.Jitter, p, j, 1)
			l.addNode(petalID(p, j), e.Category, scene.Point{
				X: center.X + dir.X*along + perp.X*aside,
				Y: center.Y + dir.Y*along + perp.Y*aside,
			}, e.Size)
		}

		l.addEdge(pivot, petalID(p, 0))
		for _, lk := range tpl.PetalLinks {
			l.addEdge(petalID(p, lk.From), petalID(p, lk.To))
		}
	}
	return l
}

// jitter maps an index tuple to a symmetric perturbation in [-scale, scale).
func jitter(scale float64, keys ...int) float64 {
	return (scene.Hash01(keys...)*2 - 1) * scale
}

func petalID(p, j int) string {
	return fmt.Sprintf("petal-%d-%d", p, j)
}

func (l *Layout) addNode(id string, cat scene.Category, pos scene.Point, size float64) {
	l.byID[id] = len(l.Nodes)
	l.Nodes = append(l.Nodes, Element{ID: id, Category: cat, Pos: pos, Size: size})
}

func (l *Layout) addEdge(from, to string) {
	l.Edges = append(l.Edges, Link{
		ID:   from + ":" + to,
		From: from,
		To:   to,
	})
}

// =============================================================================
// Mounting
// =============================================================================

// Mount registers every generated element on the stage at its final geometry,
// hidden, ready for the reveal sequence to bring it in.
func (l *Layout) Mount(stage *scene.Stage, cfg *scene.Config) {
	for _, n := range l.Nodes {
		stage.Mount(n.ID)
		stage.SetNodePosition(n.ID, n.Pos)
		stage.SetNumber(n.ID, scene.AttrDotRadius, 0)
		stage.SetNumber(n.ID, scene.AttrDotOpacity, 0)
		stage.SetNumber(n.ID, scene.AttrRingRadius, 0)
		stage.SetNumber(n.ID, scene.AttrRingOpacity, 0)
		stage.SetString(n.ID, scene.AttrDotFill, cfg.CategoryColor(n.Category))
		stage.SetString(n.ID, scene.AttrRingStroke, cfg.CategoryColor(n.Category))
	}
	for _, e := range l.Edges {
		from, _ := l.Node(e.From)
		to, _ := l.Node(e.To)
		stage.Mount(e.ID)
		if from != nil && to != nil {
			stage.SetEdgeEndpoints(e.ID, from.Pos, to.Pos)
		}
		stage.SetNumber(e.ID, scene.AttrStrokeWidth, cfg.Look.EdgeWidth)
		stage.SetNumber(e.ID, scene.AttrOpacity, 0)
		stage.SetNumber(e.ID, scene.AttrDashOffset, 0)
		stage.SetString(e.ID, scene.AttrStroke, cfg.Colors.EdgeRest)
		stage.SetString(e.ID, scene.AttrDash, "")
	}
}
