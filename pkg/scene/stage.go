package scene

// =============================================================================
// Attributes
// =============================================================================

// Attr names one mutable visual attribute of a stage element.
type Attr string

// Numeric attributes.
const (
	AttrX Attr = "x" // node/marker position (physics-owned for nodes)
	AttrY Attr = "y"

	AttrDotRadius   Attr = "dot_radius"
	AttrDotOpacity  Attr = "dot_opacity"
	AttrRingRadius  Attr = "ring_radius"
	AttrRingOpacity Attr = "ring_opacity"

	AttrX1 Attr = "x1" // edge endpoints, derived from node positions
	AttrY1 Attr = "y1"
	AttrX2 Attr = "x2"
	AttrY2 Attr = "y2"

	AttrStrokeWidth Attr = "stroke_width"
	AttrOpacity     Attr = "opacity"
	AttrDashOffset  Attr = "dash_offset" // the only dash value driven continuously
	AttrRadius      Attr = "radius"      // marker
)

// Color attributes, stored as hex strings.
const (
	AttrDotFill    Attr = "dot_fill"
	AttrRingStroke Attr = "ring_stroke"
	AttrStroke     Attr = "stroke"
)

// Text attributes, set-only (never interpolated).
const (
	AttrDash Attr = "dash" // segment pattern, e.g. "6 4"
)

// =============================================================================
// Stage
// =============================================================================

// Stage is the shared, flat attribute store between engine and presentation.
//
// The presentation layer mounts each element exactly once; all later writes
// go through attribute setters. Writes to unmounted elements are silently
// dropped, since render timing is not guaranteed to precede the first tick.
//
// The element identifier set is shared read-only after construction; no
// component deletes elements mid-session.
type Stage struct {
	nums map[string]map[Attr]float64
	strs map[string]map[Attr]string
}

// NewStage returns an empty stage with no mounted elements.
func NewStage() *Stage {
	return &Stage{
		nums: make(map[string]map[Attr]float64),
		strs: make(map[string]map[Attr]string),
	}
}

// Mount registers an element so attribute writes to it take effect.
// Mounting an already-mounted element is a no-op.
func (s *Stage) Mount(id string) {
	if _, ok := s.nums[id]; ok {
		return
	}
	s.nums[id] = make(map[Attr]float64)
	s.strs[id] = make(map[Attr]string)
}

// Has reports whether the element is mounted.
func (s *Stage) Has(id string) bool {
	_, ok := s.nums[id]
	return ok
}

// IDs returns the mounted element IDs in unspecified order.
func (s *Stage) IDs() []string {
	ids := make([]string, 0, len(s.nums))
	for id := range s.nums {
		ids = append(ids, id)
	}
	return ids
}

// SetNumber writes a numeric attribute. No-op for unmounted elements.
func (s *Stage) SetNumber(id string, a Attr, v float64) {
	if m, ok := s.nums[id]; ok {
		m[a] = v
	}
}

// Number reads a numeric attribute.
func (s *Stage) Number(id string, a Attr) (float64, bool) {
	m, ok := s.nums[id]
	if !ok {
		return 0, false
	}
	v, ok := m[a]
	return v, ok
}

// SetString writes a color or text attribute. No-op for unmounted elements.
func (s *Stage) SetString(id string, a Attr, v string) {
	if m, ok := s.strs[id]; ok {
		m[a] = v
	}
}

// String reads a color or text attribute.
func (s *Stage) String(id string, a Attr) (string, bool) {
	m, ok := s.strs[id]
	if !ok {
		return "", false
	}
	v, ok := m[a]
	return v, ok
}

// =============================================================================
// Geometry path - physics solver only
// =============================================================================

// SetNodePosition writes a node's live position. The physics solver is the
// only caller; the timeline engine never touches node positions.
func (s *Stage) SetNodePosition(id string, p Point) {
	if m, ok := s.nums[id]; ok {
		m[AttrX] = p.X
		m[AttrY] = p.Y
	}
}

// SetEdgeEndpoints writes an edge's derived endpoint coordinates.
func (s *Stage) SetEdgeEndpoints(id string, a, b Point) {
	if m, ok := s.nums[id]; ok {
		m[AttrX1] = a.X
		m[AttrY1] = a.Y
		m[AttrX2] = b.X
		m[AttrY2] = b.Y
	}
}

// Position reads an element's live position.
func (s *Stage) Position(id string) (Point, bool) {
	m, ok := s.nums[id]
	if !ok {
		return Point{}, false
	}
	x, okx := m[AttrX]
	y, oky := m[AttrY]
	if !okx || !oky {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// =============================================================================
// Mount helpers
// =============================================================================

// MountNode mounts a node element with resting defaults from cfg.
func (s *Stage) MountNode(n Node, cfg *Config) {
	s.Mount(n.ID)
	s.SetNodePosition(n.ID, n.Seed)
	s.SetNumber(n.ID, AttrDotRadius, cfg.Look.DotRadius)
	s.SetNumber(n.ID, AttrDotOpacity, 1)
	s.SetNumber(n.ID, AttrRingRadius, cfg.Look.RingRadius)
	s.SetNumber(n.ID, AttrRingOpacity, cfg.Look.RingOpacity)
	s.SetString(n.ID, AttrDotFill, cfg.CategoryColor(n.Category))
	s.SetString(n.ID, AttrRingStroke, cfg.CategoryColor(n.Category))
}

// MountEdge mounts an edge element with resting defaults from cfg.
func (s *Stage) MountEdge(e Edge, g *Graph, cfg *Config) {
	s.Mount(e.ID)
	from, _ := g.Node(e.From)
	to, _ := g.Node(e.To)
	if from != nil && to != nil {
		s.SetEdgeEndpoints(e.ID, from.Seed, to.Seed)
	}
	s.SetNumber(e.ID, AttrStrokeWidth, cfg.Look.EdgeWidth)
	s.SetNumber(e.ID, AttrOpacity, cfg.Look.EdgeOpacity)
	s.SetNumber(e.ID, AttrDashOffset, 0)
	s.SetString(e.ID, AttrStroke, cfg.Colors.EdgeRest)
	s.SetString(e.ID, AttrDash, "")
}

// MountMarker mounts the repair marker, hidden at the given point.
func (s *Stage) MountMarker(at Point, cfg *Config) {
	s.Mount(MarkerID)
	s.SetNumber(MarkerID, AttrX, at.X)
	s.SetNumber(MarkerID, AttrY, at.Y)
	s.SetNumber(MarkerID, AttrRadius, cfg.Look.MarkerRadius)
	s.SetNumber(MarkerID, AttrOpacity, 0)
	s.SetString(MarkerID, AttrDotFill, cfg.Colors.Marker)
}
