package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// =============================================================================
// Graph Files
// =============================================================================

// graphFile is the on-disk TOML schema for a narrative graph. It is kept
// separate from the scene types so the file format can stay stable while the
// engine types evolve.
type graphFile struct {
	Variant string          `toml:"variant"`
	Nodes   []graphFileNode `toml:"nodes"`
	Edges   []graphFileEdge `toml:"edges"`
}

type graphFileNode struct {
	ID        string    `toml:"id"`
	Category  string    `toml:"category"`
	Seed      []float64 `toml:"seed"` // [x, y]
	GapSource bool      `toml:"gap_source"`
	GapTarget bool      `toml:"gap_target"`
	Known     bool      `toml:"known"`
}

type graphFileEdge struct {
	ID     string `toml:"id"`
	From   string `toml:"from"`
	To     string `toml:"to"`
	Broken bool   `toml:"broken"`
}

// loadGraph reads a graph from a TOML file. An empty path returns the
// built-in gap-repair demo graph.
func loadGraph(path string) (*scene.Graph, error) {
	if path == "" {
		return demoGapGraph()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	var f graphFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse %s", path)
	}
	return f.toGraph()
}

func (f *graphFile) toGraph() (*scene.Graph, error) {
	nodes := make([]scene.Node, len(f.Nodes))
	for i, n := range f.Nodes {
		var seed scene.Point
		if len(n.Seed) == 2 {
			seed = scene.Point{X: n.Seed[0], Y: n.Seed[1]}
		}
		nodes[i] = scene.Node{
			ID:        n.ID,
			Category:  scene.Category(n.Category),
			Seed:      seed,
			GapSource: n.GapSource,
			GapTarget: n.GapTarget,
			Known:     n.Known,
		}
	}
	edges := make([]scene.Edge, len(f.Edges))
	for i, e := range f.Edges {
		edges[i] = scene.Edge{ID: e.ID, From: e.From, To: e.To, Broken: e.Broken}
	}
	return scene.New(scene.Variant(f.Variant), nodes, edges)
}

// =============================================================================
// Built-In Demos
// =============================================================================

// demoGapGraph is a small gap-repair narrative: a skills map with one broken
// link between planning and shipping.
func demoGapGraph() (*scene.Graph, error) {
	return scene.New(scene.VariantGapRepair,
		[]scene.Node{
			{ID: "plan", Category: scene.CategoryConcept, Seed: scene.Point{X: 180, Y: 140}, GapSource: true},
			{ID: "ship", Category: scene.CategorySkill, Seed: scene.Point{X: 560, Y: 150}, GapTarget: true},
			{ID: "design", Category: scene.CategoryConcept, Seed: scene.Point{X: 300, Y: 260}},
			{ID: "build", Category: scene.CategorySkill, Seed: scene.Point{X: 430, Y: 230}},
			{ID: "review", Category: scene.CategoryPractice, Seed: scene.Point{X: 360, Y: 370}},
			{ID: "ci", Category: scene.CategoryTool, Seed: scene.Point{X: 520, Y: 340}},
			{ID: "metrics", Category: scene.CategoryTool, Seed: scene.Point{X: 640, Y: 270}},
		},
		[]scene.Edge{
			{ID: "plan-ship", From: "plan", To: "ship", Broken: true},
			{ID: "plan-design", From: "plan", To: "design"},
			{ID: "design-build", From: "design", To: "build"},
			{ID: "build-review", From: "build", To: "review"},
			{ID: "build-ci", From: "build", To: "ci"},
			{ID: "ci-ship", From: "ci", To: "ship"},
			{ID: "ship-metrics", From: "ship", To: "metrics"},
		})
}

// demoKnownGraph is a small known-unknown narrative: the learner already
// knows the HTTP side of the map.
func demoKnownGraph() (*scene.Graph, error) {
	return scene.New(scene.VariantKnownUnknown,
		[]scene.Node{
			{ID: "http", Category: scene.CategoryConcept, Seed: scene.Point{X: 200, Y: 160}, Known: true},
			{ID: "rest", Category: scene.CategoryConcept, Seed: scene.Point{X: 340, Y: 120}, Known: true},
			{ID: "json", Category: scene.CategoryTool, Seed: scene.Point{X: 300, Y: 280}, Known: true},
			{ID: "grpc", Category: scene.CategorySkill, Seed: scene.Point{X: 480, Y: 220}},
			{ID: "proto", Category: scene.CategoryTool, Seed: scene.Point{X: 560, Y: 340}},
			{ID: "streaming", Category: scene.CategoryPractice, Seed: scene.Point{X: 600, Y: 160}},
		},
		[]scene.Edge{
			{ID: "http-rest", From: "http", To: "rest"},
			{ID: "rest-json", From: "rest", To: "json"},
			{ID: "rest-grpc", From: "rest", To: "grpc"},
			{ID: "grpc-proto", From: "grpc", To: "proto"},
			{ID: "grpc-streaming", From: "grpc", To: "streaming"},
		})
}
