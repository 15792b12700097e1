package choreo

import (
	"fmt"

	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

// dashPattern is the segment pattern used for broken and not-yet-learned
// edges. The offset is the only dash value that animates.
const dashPattern = "6 4"

// dashCycle is the length of one dashPattern repeat, so a full-cycle offset
// loop marches seamlessly.
const dashCycle = 10.0

// =============================================================================
// Resting
// =============================================================================

// buildResting restores the calm baseline: solid edges, category-colored
// nodes, and the ambient breathing loop on every glow ring.
func (c *Controller) buildResting() *timeline.Timeline {
	ph := c.cfg.Phases
	look := c.cfg.Look
	tl := timeline.New()

	for _, e := range c.graph.Edges {
		tl.SetText(e.ID, scene.AttrDash, "", 0)
		tl.Set(e.ID, scene.AttrDashOffset, 0, 0)
		tl.TweenColor(e.ID, scene.AttrStroke, c.cfg.Colors.EdgeRest, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, look.EdgeOpacity, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrStrokeWidth, look.EdgeWidth, 0, ph.DimDuration, timeline.EaseInOut)
	}
	for _, n := range c.graph.Nodes {
		cat := c.cfg.CategoryColor(n.Category)
		tl.TweenColor(n.ID, scene.AttrDotFill, cat, 0, ph.DimDuration, timeline.EaseInOut)
		tl.TweenColor(n.ID, scene.AttrRingStroke, cat, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(n.ID, scene.AttrDotOpacity, 1, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(n.ID, scene.AttrDotRadius, look.DotRadius, 0, ph.DimDuration, timeline.EaseInOut)
	}
	tl.Tween(scene.MarkerID, scene.AttrOpacity, 0, 0, ph.FlashDuration, timeline.EaseOut)

	c.addBreathing(tl, ph.DimDuration, ph.BreatheScale)
	return tl
}

// addBreathing spawns the ambient ring loop for every node with a
// deterministic per-node phase offset, so the collection never pulses in
// mechanical lockstep. The loops belong to the timeline's handle and die
// with it.
func (c *Controller) addBreathing(tl *timeline.Timeline, at, scale float64) {
	ph := c.cfg.Phases
	look := c.cfg.Look
	for i, n := range c.graph.Nodes {
		off := at + scene.Hash01(i)*ph.BreathePeriod
		tl.Loop(n.ID, scene.AttrRingRadius, look.RingRadius, look.RingRadius*scale,
			ph.BreathePeriod, timeline.EaseSine, off, true)
		tl.Loop(n.ID, scene.AttrRingOpacity, look.RingOpacity*0.6, look.RingOpacity,
			ph.BreathePeriod, timeline.EaseSine, off, true)
	}
}

// =============================================================================
// Diagnostic
// =============================================================================

// buildDiagnostic dims everything non-relevant and flags the narrative's
// focus: the broken edge and its endpoints in the gap-repair variant, the
// known subset in the known-unknown variant.
func (c *Controller) buildDiagnostic() *timeline.Timeline {
	if c.graph.Variant == scene.VariantKnownUnknown {
		return c.buildDiagnosticKnown()
	}
	ph := c.cfg.Phases
	look := c.cfg.Look
	colors := c.cfg.Colors
	tl := timeline.New()

	src, dst, _ := c.graph.GapPair()
	relevant := map[string]bool{}
	if src != nil {
		relevant[src.ID] = true
	}
	if dst != nil {
		relevant[dst.ID] = true
	}

	for _, e := range c.graph.Edges {
		if e.Broken {
			continue
		}
		tl.TweenColor(e.ID, scene.AttrStroke, colors.Dimmed, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, ph.DimOpacity, 0, ph.DimDuration, timeline.EaseInOut)
	}
	for _, n := range c.graph.Nodes {
		if relevant[n.ID] {
			continue
		}
		tl.Tween(n.ID, scene.AttrDotOpacity, ph.DimOpacity, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(n.ID, scene.AttrRingOpacity, 0, 0, ph.DimDuration, timeline.EaseInOut)
	}

	// The broken edge flashes, settles to the broken color, and starts an
	// endless marching dash. The motion is the "something is wrong" signal.
	if be, ok := c.graph.BrokenEdge(); ok {
		tl.SetColor(be.ID, scene.AttrStroke, colors.Flash, 0)
		tl.TweenColor(be.ID, scene.AttrStroke, colors.Broken, 0, ph.FlashDuration, timeline.EaseOut)
		tl.Tween(be.ID, scene.AttrOpacity, 1, 0, ph.FlashDuration, timeline.EaseOut)
		tl.SetText(be.ID, scene.AttrDash, dashPattern, 0)
		tl.Loop(be.ID, scene.AttrDashOffset, 0, -dashCycle, ph.MarchPeriod, timeline.EaseLinear, 0, false)
	}

	// Endpoints bounce in and keep pulsing.
	for i, n := range []*scene.Node{src, dst} {
		if n == nil {
			continue
		}
		stagger := float64(i) * 0.15
		tl.TweenColor(n.ID, scene.AttrDotFill, colors.Broken, stagger, ph.FlashDuration, timeline.EaseOut)
		tl.Tween(n.ID, scene.AttrDotRadius, look.DotRadius*1.25, stagger, ph.BounceDuration, timeline.EaseOutBack)
		tl.Loop(n.ID, scene.AttrRingOpacity, look.RingOpacity, look.RingOpacity*2,
			ph.PulsePeriod, timeline.EaseSine, ph.BounceDuration+stagger, true)
		tl.Loop(n.ID, scene.AttrRingRadius, look.RingRadius, look.RingRadius*1.5,
			ph.PulsePeriod, timeline.EaseSine, ph.BounceDuration+stagger, true)
	}
	return tl
}

// buildDiagnosticKnown is the known-unknown variant's diagnostic: the known
// subset stays lit and pulses, everything else recedes.
func (c *Controller) buildDiagnosticKnown() *timeline.Timeline {
	ph := c.cfg.Phases
	look := c.cfg.Look
	colors := c.cfg.Colors
	tl := timeline.New()

	known := 0
	for _, n := range c.graph.Nodes {
		if !n.Known {
			tl.Tween(n.ID, scene.AttrDotOpacity, ph.DimOpacity, 0, ph.DimDuration, timeline.EaseInOut)
			tl.Tween(n.ID, scene.AttrRingOpacity, 0, 0, ph.DimDuration, timeline.EaseInOut)
			continue
		}
		stagger := float64(known) * 0.1
		known++
		tl.Tween(n.ID, scene.AttrDotRadius, look.DotRadius*1.2, stagger, ph.BounceDuration, timeline.EaseOutBack)
		tl.Loop(n.ID, scene.AttrRingOpacity, look.RingOpacity, look.RingOpacity*1.8,
			ph.PulsePeriod, timeline.EaseSine, ph.BounceDuration+stagger, true)
	}
	for _, e := range c.graph.Edges {
		if c.graph.Classify(e) == scene.EdgeClassKnown {
			tl.Tween(e.ID, scene.AttrOpacity, 1, 0, ph.DimDuration, timeline.EaseInOut)
			continue
		}
		tl.TweenColor(e.ID, scene.AttrStroke, colors.Dimmed, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, ph.DimOpacity, 0, ph.DimDuration, timeline.EaseInOut)
	}
	return tl
}

// =============================================================================
// Repair
// =============================================================================

// buildRepair plays the gap-repair travel: a marker moves from source to
// target while the broken edge's reveal animates with the identical start
// offset, duration and easing: completion coincides because the three
// parameters coincide, not because anything syncs them. Every effect that
// fires on arrival is scheduled at the one precomputed arrival instant.
func (c *Controller) buildRepair() *timeline.Timeline {
	ph := c.cfg.Phases
	look := c.cfg.Look
	colors := c.cfg.Colors
	tl := timeline.New()

	src, dst, ok := c.graph.GapPair()
	if !ok {
		return tl
	}
	from := c.nodePos(src.ID)
	to := c.nodePos(dst.ID)

	// Background recedes toward neutral.
	for _, n := range c.graph.Nodes {
		if n.ID == src.ID || n.ID == dst.ID {
			continue
		}
		tl.Tween(n.ID, scene.AttrDotOpacity, ph.DimOpacity, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(n.ID, scene.AttrRingOpacity, 0, 0, ph.DimDuration, timeline.EaseInOut)
	}
	for _, e := range c.graph.Edges {
		if e.Broken {
			continue
		}
		tl.TweenColor(e.ID, scene.AttrStroke, colors.Dimmed, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, ph.DimOpacity*0.6, 0, ph.DimDuration, timeline.EaseInOut)
	}

	// Marker appears at the source.
	tl.Set(scene.MarkerID, scene.AttrX, from.X, 0)
	tl.Set(scene.MarkerID, scene.AttrY, from.Y, 0)
	tl.Set(scene.MarkerID, scene.AttrRadius, look.MarkerRadius, 0)
	tl.Tween(scene.MarkerID, scene.AttrOpacity, 1, 0, ph.RepairStart, timeline.EaseOut)

	// Synchronized travel and reveal: one (offset, duration, easing) triple.
	const travelEase = timeline.EaseInOut
	tl.Tween(scene.MarkerID, scene.AttrX, to.X, ph.RepairStart, ph.RepairDuration, travelEase)
	tl.Tween(scene.MarkerID, scene.AttrY, to.Y, ph.RepairStart, ph.RepairDuration, travelEase)

	if be, hasBroken := c.graph.BrokenEdge(); hasBroken {
		// Reveal by dash: pattern as long as the edge, offset from fully
		// hidden to fully shown.
		length := from.Dist(to)
		tl.SetText(be.ID, scene.AttrDash, fmt.Sprintf("%.1f %.1f", length, length), 0)
		tl.Set(be.ID, scene.AttrDashOffset, length, 0)
		tl.SetColor(be.ID, scene.AttrStroke, colors.Success, 0)
		tl.Set(be.ID, scene.AttrOpacity, 1, 0)
		tl.Tween(be.ID, scene.AttrDashOffset, 0, ph.RepairStart, ph.RepairDuration, travelEase)
	}

	// Arrival-triggered effects, all anchored at the same instant.
	arrive := timeline.Arrival(ph.RepairStart, ph.RepairDuration)
	tl.Tween(scene.MarkerID, scene.AttrOpacity, 0, arrive, ph.FlashDuration, timeline.EaseOut)

	// Burst: an expanding, fading ring on the target.
	tl.Set(dst.ID, scene.AttrRingRadius, look.RingRadius, arrive)
	tl.Set(dst.ID, scene.AttrRingOpacity, 0.9, arrive)
	tl.Tween(dst.ID, scene.AttrRingRadius, look.RingRadius*3, arrive, ph.BurstDuration, timeline.EaseOut)
	tl.Tween(dst.ID, scene.AttrRingOpacity, 0, arrive, ph.BurstDuration, timeline.EaseOut)

	// Bounce-in on the target dot.
	tl.Tween(dst.ID, scene.AttrDotOpacity, 1, arrive, ph.BounceDuration, timeline.EaseOut)
	tl.Tween(dst.ID, scene.AttrDotRadius, look.DotRadius*1.3, arrive, ph.BounceDuration, timeline.EaseOutBack)
	return tl
}

// =============================================================================
// Learning
// =============================================================================

// buildLearning is the known-unknown variant's second active phase:
// previously-unknown nodes bounce in and the not-yet-learned edges fade in
// dashed, each collection staggered, with a glow loop trailing the reveals.
func (c *Controller) buildLearning() *timeline.Timeline {
	ph := c.cfg.Phases
	look := c.cfg.Look
	colors := c.cfg.Colors
	tl := timeline.New()

	var unknownIDs []string
	for _, n := range c.graph.Nodes {
		if n.Known {
			continue
		}
		unknownIDs = append(unknownIDs, n.ID)
	}

	for i, id := range unknownIDs {
		at := float64(i) * ph.RippleStep * 2
		n, _ := c.graph.Node(id)
		tl.Tween(id, scene.AttrDotOpacity, 1, at, ph.BounceDuration, timeline.EaseOut)
		tl.Tween(id, scene.AttrDotRadius, look.DotRadius*1.2, at, ph.BounceDuration, timeline.EaseOutBack)
		tl.TweenColor(id, scene.AttrDotFill, c.cfg.CategoryColor(n.Category), at, ph.BounceDuration, timeline.EaseOut)
	}

	lastIn := float64(len(unknownIDs)) * ph.RippleStep * 2
	for i, e := range c.graph.Edges {
		if c.graph.Classify(e) != scene.EdgeClassLearning {
			continue
		}
		at := float64(i) * ph.RippleStep
		tl.SetText(e.ID, scene.AttrDash, dashPattern, at)
		tl.TweenColor(e.ID, scene.AttrStroke, colors.EdgeRest, at, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, look.EdgeOpacity, at, ph.DimDuration, timeline.EaseInOut)
	}

	// Staggered glow over the newcomers once they are in.
	tl.LoopEach(unknownIDs, scene.AttrRingOpacity, look.RingOpacity*0.5, look.RingOpacity*1.6,
		ph.PulsePeriod, timeline.EaseSine, lastIn, ph.RippleStep, true)
	return tl
}

// =============================================================================
// Solidified
// =============================================================================

// buildSolidified snaps the repaired (or learned) edges to the bold success
// look and ripples a green flash outward across the nodes, nearest to the
// reference point first. After the last ripple entry settles, the ambient
// breathing restarts at a brighter amplitude.
func (c *Controller) buildSolidified() *timeline.Timeline {
	ph := c.cfg.Phases
	look := c.cfg.Look
	colors := c.cfg.Colors
	tl := timeline.New()

	for _, e := range c.graph.Edges {
		cl := c.graph.Classify(e)
		if cl == scene.EdgeClassKnown && c.graph.Variant == scene.VariantKnownUnknown {
			tl.Tween(e.ID, scene.AttrOpacity, look.EdgeOpacity, 0, ph.DimDuration, timeline.EaseInOut)
			continue
		}
		if cl == scene.EdgeClassBroken || cl == scene.EdgeClassLearning {
			// Snap, not tween: solidifying is abrupt on purpose.
			tl.SetText(e.ID, scene.AttrDash, "", 0)
			tl.Set(e.ID, scene.AttrDashOffset, 0, 0)
			tl.SetColor(e.ID, scene.AttrStroke, colors.Success, 0)
			tl.Set(e.ID, scene.AttrStrokeWidth, look.EdgeWidth*1.8, 0)
			tl.Set(e.ID, scene.AttrOpacity, 1, 0)
			continue
		}
		tl.TweenColor(e.ID, scene.AttrStroke, colors.EdgeRest, 0, ph.DimDuration, timeline.EaseInOut)
		tl.Tween(e.ID, scene.AttrOpacity, look.EdgeOpacity, 0, ph.DimDuration, timeline.EaseInOut)
	}

	ids, delays := c.rippleOrder(c.rippleCenter())
	for i, id := range ids {
		d := delays[i]
		n, _ := c.graph.Node(id)
		tl.SetColor(id, scene.AttrDotFill, colors.Success, d)
		tl.TweenColor(id, scene.AttrDotFill, c.cfg.CategoryColor(n.Category), d, ph.RippleDuration, timeline.EaseOut)
		tl.Set(id, scene.AttrDotRadius, look.DotRadius*1.45, d)
		tl.Tween(id, scene.AttrDotRadius, look.DotRadius, d, ph.RippleDuration, timeline.EaseOutBack)
		tl.Tween(id, scene.AttrDotOpacity, 1, d, ph.RippleDuration, timeline.EaseOut)
	}

	after := ph.RippleDuration
	if len(delays) > 0 {
		after += delays[len(delays)-1]
	}
	c.addBreathing(tl, after, ph.BreatheBrightScale)
	return tl
}
