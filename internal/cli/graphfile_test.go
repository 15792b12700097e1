package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

func TestLoadGraphFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.toml")
	content := `
variant = "gap-repair"

[[nodes]]
id = "a"
category = "concept"
seed = [100.0, 120.0]
gap_source = true

[[nodes]]
id = "b"
category = "skill"
seed = [300.0, 140.0]
gap_target = true

[[edges]]
id = "ab"
from = "a"
to = "b"
broken = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := loadGraph(path)
	if err != nil {
		t.Fatalf("loadGraph: %v", err)
	}
	if g.Variant != scene.VariantGapRepair {
		t.Errorf("variant = %q", g.Variant)
	}
	n, ok := g.Node("a")
	if !ok || !n.GapSource || n.Seed != (scene.Point{X: 100, Y: 120}) {
		t.Errorf("node a = %+v", n)
	}
	if _, ok := g.BrokenEdge(); !ok {
		t.Error("broken edge lost in translation")
	}
}

func TestLoadGraphErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{
			name:    "bad variant",
			content: `variant = "sideways"`,
			code:    errors.ErrCodeInvalidVariant,
		},
		{
			name: "dangling edge",
			content: `
variant = "known-unknown"

[[nodes]]
id = "a"
category = "concept"
known = true

[[edges]]
id = "ax"
from = "a"
to = "x"
`,
			code: errors.ErrCodeUnknownNode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "graph.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := loadGraph(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}

	_, err := loadGraph(filepath.Join(t.TempDir(), "absent.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestDemoGraphsAreValid(t *testing.T) {
	if _, err := demoGapGraph(); err != nil {
		t.Errorf("gap demo: %v", err)
	}
	g, err := demoKnownGraph()
	if err != nil {
		t.Fatalf("known demo: %v", err)
	}

	// The known demo must exercise both edge classes.
	classes := map[scene.EdgeClass]bool{}
	for _, e := range g.Edges {
		classes[g.Classify(e)] = true
	}
	if !classes[scene.EdgeClassKnown] || !classes[scene.EdgeClassLearning] {
		t.Errorf("known demo edge classes = %v, want both known and learning", classes)
	}
}
