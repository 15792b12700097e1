package scene

import (
	"testing"

	"github.com/finnvoss/glowgraph/pkg/errors"
)

func gapNodes() []Node {
	return []Node{
		{ID: "a", Category: CategoryConcept, Seed: Point{X: 0, Y: 0}, GapSource: true},
		{ID: "b", Category: CategorySkill, Seed: Point{X: 100, Y: 0}, GapTarget: true},
		{ID: "c", Category: CategoryTool, Seed: Point{X: 50, Y: 80}},
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		variant  Variant
		nodes    []Node
		edges    []Edge
		wantCode errors.Code
	}{
		{
			name:    "ValidGapRepair",
			variant: VariantGapRepair,
			nodes:   gapNodes(),
			edges: []Edge{
				{ID: "e1", From: "a", To: "b", Broken: true},
				{ID: "e2", From: "b", To: "c"},
			},
		},
		{
			name:    "ValidKnownUnknown",
			variant: VariantKnownUnknown,
			nodes: []Node{
				{ID: "a", Known: true},
				{ID: "b", Known: true},
				{ID: "c"},
			},
			edges: []Edge{{ID: "e1", From: "a", To: "b"}},
		},
		{
			name:     "UnknownVariant",
			variant:  Variant("vaudeville"),
			nodes:    gapNodes(),
			wantCode: errors.ErrCodeInvalidVariant,
		},
		{
			name:     "DuplicateNodeID",
			variant:  VariantGapRepair,
			nodes:    append(gapNodes(), Node{ID: "a"}),
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "EdgeReferencesMissingNode",
			variant:  VariantGapRepair,
			nodes:    gapNodes(),
			edges:    []Edge{{ID: "e1", From: "a", To: "zz"}},
			wantCode: errors.ErrCodeUnknownNode,
		},
		{
			name:     "DuplicateEdgeID",
			variant:  VariantGapRepair,
			nodes:    gapNodes(),
			edges:    []Edge{{ID: "e1", From: "a", To: "b"}, {ID: "e1", From: "b", To: "c"}},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "MissingGapTarget",
			variant: VariantGapRepair,
			nodes: []Node{
				{ID: "a", GapSource: true},
				{ID: "b"},
			},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "TwoBrokenEdges",
			variant: VariantGapRepair,
			nodes:   gapNodes(),
			edges: []Edge{
				{ID: "e1", From: "a", To: "b", Broken: true},
				{ID: "e2", From: "b", To: "c", Broken: true},
			},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "BrokenEdgeOffPair",
			variant:  VariantGapRepair,
			nodes:    gapNodes(),
			edges:    []Edge{{ID: "e1", From: "b", To: "c", Broken: true}},
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:    "KnownFlagsInGapVariant",
			variant: VariantGapRepair,
			nodes: append(gapNodes(), Node{
				ID: "d", Known: true,
			}),
			wantCode: errors.ErrCodeInvalidGraph,
		},
		{
			name:     "EmptyKnownSubset",
			variant:  VariantKnownUnknown,
			nodes:    []Node{{ID: "a"}, {ID: "b"}},
			wantCode: errors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.variant, tt.nodes, tt.edges)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("New() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestGapPair(t *testing.T) {
	g, err := New(VariantGapRepair, gapNodes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	src, dst, ok := g.GapPair()
	if !ok {
		t.Fatal("GapPair() ok = false")
	}
	if src.ID != "a" || dst.ID != "b" {
		t.Errorf("GapPair() = %s→%s, want a→b", src.ID, dst.ID)
	}
}

func TestClassify(t *testing.T) {
	known := func(id string, k bool) Node { return Node{ID: id, Known: k} }

	g, err := New(VariantKnownUnknown,
		[]Node{known("a", true), known("b", true), known("c", false)},
		[]Edge{
			{ID: "e1", From: "a", To: "b"},
			{ID: "e2", From: "b", To: "c"},
		})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Classify(g.Edges[0]); got != EdgeClassKnown {
		t.Errorf("Classify(e1) = %v, want known", got)
	}
	if got := g.Classify(g.Edges[1]); got != EdgeClassLearning {
		t.Errorf("Classify(e2) = %v, want learning", got)
	}

	// Pure: unchanged flags yield the same result on repeated calls.
	for i := 0; i < 3; i++ {
		if got := g.Classify(g.Edges[1]); got != EdgeClassLearning {
			t.Fatalf("Classify(e2) call %d = %v, want learning", i, got)
		}
	}

	// Flipping the flag flips the classification consistently.
	for i := range g.Nodes {
		if g.Nodes[i].ID == "c" {
			g.Nodes[i].Known = true
		}
	}
	if got := g.Classify(g.Edges[1]); got != EdgeClassKnown {
		t.Errorf("Classify(e2) after flip = %v, want known", got)
	}
}

func TestClassifyGapRepair(t *testing.T) {
	g, err := New(VariantGapRepair, gapNodes(), []Edge{
		{ID: "e1", From: "a", To: "b", Broken: true},
		{ID: "e2", From: "b", To: "c"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Classify(g.Edges[0]); got != EdgeClassBroken {
		t.Errorf("Classify(broken) = %v, want broken", got)
	}
	if got := g.Classify(g.Edges[1]); got != EdgeClassKnown {
		t.Errorf("Classify(intact) = %v, want known", got)
	}
}
