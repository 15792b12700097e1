package export

import (
	"bytes"
	"fmt"

	"github.com/finnvoss/glowgraph/pkg/bloom"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// dotScale converts stage pixels to Graphviz inches for pinned positions.
const dotScale = 72.0

// GraphToDOT converts a narrative graph to DOT with pinned node positions.
// Positions come from the stage when it has them, seeds otherwise, so an
// export taken after the solver settles shows the solved layout. Edge style
// follows classification: broken edges dashed red, learning edges dashed,
// known edges solid.
func GraphToDOT(g *scene.Graph, stage *scene.Stage, cfg *scene.Config) string {
	var buf bytes.Buffer
	buf.WriteString("graph diagram {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		pos := n.Seed
		if stage != nil {
			if p, ok := stage.Position(n.ID); ok {
				pos = p
			}
		}
		fmt.Fprintf(&buf, "  %q [pos=\"%.3f,%.3f!\", fillcolor=%q, width=%.2f];\n",
			n.ID, pos.X/dotScale, -pos.Y/dotScale, cfg.CategoryColor(n.Category),
			cfg.Look.DotRadius*2/dotScale)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.From, e.To, edgeAttrs(g.Classify(e), cfg))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(cl scene.EdgeClass, cfg *scene.Config) string {
	switch cl {
	case scene.EdgeClassBroken:
		return fmt.Sprintf("style=dashed, color=%q", cfg.Colors.Broken)
	case scene.EdgeClassLearning:
		return fmt.Sprintf("style=dashed, color=%q", cfg.Colors.Dimmed)
	default:
		return fmt.Sprintf("color=%q", cfg.Colors.EdgeRest)
	}
}

// BloomToDOT converts a generated bloom layout to DOT with pinned positions.
// Bloom geometry is final at generation time, so no stage is involved.
func BloomToDOT(l *bloom.Layout, cfg *scene.Config) string {
	var buf bytes.Buffer
	buf.WriteString("graph bloom {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, label=\"\"];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [pos=\"%.3f,%.3f!\", fillcolor=%q, width=%.2f];\n",
			n.ID, n.Pos.X/dotScale, -n.Pos.Y/dotScale,
			cfg.CategoryColor(n.Category), n.Size*2/dotScale)
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", e.From, e.To, cfg.Colors.EdgeRest)
	}

	buf.WriteString("}\n")
	return buf.String()
}
