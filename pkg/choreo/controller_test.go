package choreo

import (
	"sort"
	"testing"

	"github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/physics"
	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

func gapGraph(t *testing.T) *scene.Graph {
	t.Helper()
	nodes := []scene.Node{
		{ID: "plan", Category: scene.CategoryConcept, Seed: scene.Point{X: 100, Y: 100}, GapSource: true},
		{ID: "deploy", Category: scene.CategorySkill, Seed: scene.Point{X: 300, Y: 100}, GapTarget: true},
		{ID: "test", Category: scene.CategoryPractice, Seed: scene.Point{X: 200, Y: 250}},
		{ID: "lint", Category: scene.CategoryTool, Seed: scene.Point{X: 420, Y: 260}},
	}
	edges := []scene.Edge{
		{ID: "plan-deploy", From: "plan", To: "deploy", Broken: true},
		{ID: "plan-test", From: "plan", To: "test"},
		{ID: "test-lint", From: "test", To: "lint"},
	}
	g, err := scene.New(scene.VariantGapRepair, nodes, edges)
	if err != nil {
		t.Fatalf("gap graph: %v", err)
	}
	return g
}

func knownGraph(t *testing.T) *scene.Graph {
	t.Helper()
	nodes := []scene.Node{
		{ID: "http", Category: scene.CategoryConcept, Seed: scene.Point{X: 120, Y: 90}, Known: true},
		{ID: "rest", Category: scene.CategoryConcept, Seed: scene.Point{X: 280, Y: 120}, Known: true},
		{ID: "grpc", Category: scene.CategorySkill, Seed: scene.Point{X: 220, Y: 260}},
		{ID: "proto", Category: scene.CategoryTool, Seed: scene.Point{X: 400, Y: 240}},
	}
	edges := []scene.Edge{
		{ID: "http-rest", From: "http", To: "rest"},
		{ID: "rest-grpc", From: "rest", To: "grpc"},
		{ID: "grpc-proto", From: "grpc", To: "proto"},
	}
	g, err := scene.New(scene.VariantKnownUnknown, nodes, edges)
	if err != nil {
		t.Fatalf("known graph: %v", err)
	}
	return g
}

func newFixture(t *testing.T, g *scene.Graph) *Controller {
	t.Helper()
	cfg := scene.DefaultConfig()
	stage := scene.NewStage()
	for _, n := range g.Nodes {
		stage.MountNode(n, cfg)
	}
	for _, e := range g.Edges {
		stage.MountEdge(e, g, cfg)
	}
	stage.MountMarker(scene.Point{X: cfg.Forces.Width / 2, Y: cfg.Forces.Height / 2}, cfg)
	sim := physics.New(g, stage, cfg.Forces)
	player := timeline.NewPlayer(stage)
	return NewController(g, stage, sim, player, cfg)
}

func TestEnterPhaseRepeatKeepsHandle(t *testing.T) {
	c := newFixture(t, gapGraph(t))
	if err := c.EnterPhase(PhaseResting); err != nil {
		t.Fatalf("enter resting: %v", err)
	}
	first := c.Handle()
	if first == nil {
		t.Fatal("no handle after first transition")
	}

	if err := c.EnterPhase(PhaseResting); err != nil {
		t.Fatalf("re-enter resting: %v", err)
	}
	if c.Handle() != first {
		t.Error("re-entering the active phase replaced the handle")
	}
	if first.Cancelled() {
		t.Error("re-entering the active phase cancelled the handle")
	}
	if got := c.player.Active(); got != 1 {
		t.Errorf("active handles = %d, want 1", got)
	}
}

func TestEnterPhaseCancelsPrevious(t *testing.T) {
	c := newFixture(t, gapGraph(t))
	if err := c.EnterPhase(PhaseResting); err != nil {
		t.Fatalf("enter resting: %v", err)
	}
	resting := c.Handle()

	if err := c.EnterPhase(PhaseDiagnostic); err != nil {
		t.Fatalf("enter diagnostic: %v", err)
	}
	if !resting.Cancelled() {
		t.Error("previous handle not cancelled on transition")
	}
	if c.Handle() == resting {
		t.Error("transition did not replace the handle")
	}
	if got := c.player.Active(); got != 1 {
		t.Errorf("active handles after transition = %d, want 1", got)
	}
	if c.Current() != PhaseDiagnostic {
		t.Errorf("current = %q, want %q", c.Current(), PhaseDiagnostic)
	}
}

func TestEnterPhaseRejectsForeignPhase(t *testing.T) {
	tests := []struct {
		name  string
		graph *scene.Graph
		phase Phase
	}{
		{"learning in gap-repair", gapGraph(t), PhaseLearning},
		{"repair in known-unknown", knownGraph(t), PhaseRepair},
		{"unknown name", gapGraph(t), Phase("exploding")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFixture(t, tt.graph)
			err := c.EnterPhase(tt.phase)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidPhase {
				t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidPhase)
			}
			if c.Handle() != nil {
				t.Error("rejected transition started a timeline")
			}
		})
	}
}

func TestPhasesVocabulary(t *testing.T) {
	gap := Phases(scene.VariantGapRepair)
	if len(gap) != 4 || gap[2] != PhaseRepair {
		t.Errorf("gap-repair vocabulary = %v", gap)
	}
	known := Phases(scene.VariantKnownUnknown)
	if len(known) != 4 || known[2] != PhaseLearning {
		t.Errorf("known-unknown vocabulary = %v", known)
	}
}

func TestRippleOrderTracksDistance(t *testing.T) {
	c := newFixture(t, gapGraph(t))
	ref := c.rippleCenter()
	ids, delays := c.rippleOrder(ref)

	if len(ids) != len(c.graph.Nodes) || len(delays) != len(ids) {
		t.Fatalf("ripple covers %d/%d entries, want %d", len(ids), len(delays), len(c.graph.Nodes))
	}
	if !sort.Float64sAreSorted(delays) {
		t.Errorf("delays not non-decreasing: %v", delays)
	}
	for i := 1; i < len(ids); i++ {
		prev := c.nodePos(ids[i-1]).Dist(ref)
		cur := c.nodePos(ids[i]).Dist(ref)
		if prev > cur {
			t.Errorf("order violates distance: %s (%.1f) before %s (%.1f)", ids[i-1], prev, ids[i], cur)
		}
	}
}

func TestNodePosPrefersStage(t *testing.T) {
	c := newFixture(t, gapGraph(t))
	want := scene.Point{X: 77, Y: 88}
	c.stage.SetNodePosition("plan", want)
	if got := c.nodePos("plan"); got != want {
		t.Errorf("nodePos = %v, want stage position %v", got, want)
	}
	if got := c.nodePos("nope"); got != (scene.Point{}) {
		t.Errorf("nodePos for unknown id = %v, want origin", got)
	}
}
