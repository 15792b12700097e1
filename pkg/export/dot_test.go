package export

import (
	"strings"
	"testing"

	"github.com/finnvoss/glowgraph/pkg/bloom"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

func testGraph(t *testing.T) *scene.Graph {
	t.Helper()
	g, err := scene.New(scene.VariantGapRepair,
		[]scene.Node{
			{ID: "a", Category: scene.CategoryConcept, Seed: scene.Point{X: 72, Y: 72}, GapSource: true},
			{ID: "b", Category: scene.CategorySkill, Seed: scene.Point{X: 144, Y: 72}, GapTarget: true},
			{ID: "c", Category: scene.CategoryTool, Seed: scene.Point{X: 100, Y: 200}},
		},
		[]scene.Edge{
			{ID: "ab", From: "a", To: "b", Broken: true},
			{ID: "ac", From: "a", To: "c"},
		})
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	return g
}

func TestGraphToDOTPinsPositions(t *testing.T) {
	cfg := scene.DefaultConfig()
	g := testGraph(t)

	dot := GraphToDOT(g, nil, cfg)
	if !strings.Contains(dot, `"a" [pos="1.000,-1.000!"`) {
		t.Errorf("seed position not pinned:\n%s", dot)
	}

	// Live stage geometry wins over seeds.
	stage := scene.NewStage()
	stage.MountNode(g.Nodes[0], cfg)
	stage.SetNodePosition("a", scene.Point{X: 216, Y: 72})
	dot = GraphToDOT(g, stage, cfg)
	if !strings.Contains(dot, `"a" [pos="3.000,-1.000!"`) {
		t.Errorf("stage position not pinned:\n%s", dot)
	}
}

func TestGraphToDOTEdgeStyles(t *testing.T) {
	cfg := scene.DefaultConfig()
	dot := GraphToDOT(testGraph(t), nil, cfg)

	if !strings.Contains(dot, `"a" -- "b" [style=dashed, color="`+cfg.Colors.Broken+`"];`) {
		t.Errorf("broken edge not dashed red:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -- "c" [color="`+cfg.Colors.EdgeRest+`"];`) {
		t.Errorf("known edge not solid:\n%s", dot)
	}
}

func TestBloomToDOTCoversLayout(t *testing.T) {
	cfg := scene.DefaultConfig()
	l := bloom.Generate(bloom.DefaultTemplate(), cfg)
	dot := BloomToDOT(l, cfg)

	if got := strings.Count(dot, "pos="); got != len(l.Nodes) {
		t.Errorf("%d pinned nodes in DOT, want %d", got, len(l.Nodes))
	}
	if got := strings.Count(dot, " -- "); got != len(l.Edges) {
		t.Errorf("%d edges in DOT, want %d", got, len(l.Edges))
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="100pt" height="50pt" viewBox="0.00 -40.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}

	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox rewritten: %s", got)
	}
}
