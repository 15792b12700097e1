package physics

import (
	"testing"

	"github.com/finnvoss/glowgraph/pkg/scene"
)

func testGraph(t *testing.T) *scene.Graph {
	t.Helper()
	g, err := scene.New(scene.VariantGapRepair,
		[]scene.Node{
			{ID: "a", Seed: scene.Point{X: 300, Y: 250}, GapSource: true},
			{ID: "b", Seed: scene.Point{X: 420, Y: 250}, GapTarget: true},
			{ID: "c", Seed: scene.Point{X: 360, Y: 320}},
		},
		[]scene.Edge{
			{ID: "e1", From: "a", To: "b", Broken: true},
			{ID: "e2", From: "b", To: "c"},
		})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testSim(t *testing.T) (*Simulation, *scene.Stage, *scene.Graph) {
	t.Helper()
	g := testGraph(t)
	cfg := scene.DefaultConfig()
	stage := scene.NewStage()
	for _, n := range g.Nodes {
		stage.MountNode(n, cfg)
	}
	for _, e := range g.Edges {
		stage.MountEdge(e, g, cfg)
	}
	return New(g, stage, cfg.Forces), stage, g
}

func TestSeedPositions(t *testing.T) {
	sim, _, g := testSim(t)
	for _, n := range g.Nodes {
		p, ok := sim.Position(n.ID)
		if !ok {
			t.Fatalf("Position(%s) missing", n.ID)
		}
		if p != n.Seed {
			t.Errorf("Position(%s) = %v, want seed %v", n.ID, p, n.Seed)
		}
	}
}

func TestTickPublishesToStage(t *testing.T) {
	sim, stage, g := testSim(t)
	sim.Tick()

	for _, n := range g.Nodes {
		sp, ok := stage.Position(n.ID)
		if !ok {
			t.Fatalf("stage missing position for %s", n.ID)
		}
		lp, _ := sim.Position(n.ID)
		if sp != lp {
			t.Errorf("stage %s = %v, solver = %v", n.ID, sp, lp)
		}
	}

	// Edge endpoints derive from node positions.
	ax, _ := stage.Number("e1", scene.AttrX1)
	pa, _ := sim.Position("a")
	if ax != pa.X {
		t.Errorf("e1 x1 = %v, want %v", ax, pa.X)
	}
}

func TestUnmountedElementsSkipped(t *testing.T) {
	g := testGraph(t)
	empty := scene.NewStage() // presentation has mounted nothing yet
	sim := New(g, empty, scene.DefaultConfig().Forces)

	// Must not panic and must not create elements.
	sim.Tick()
	if empty.Has("a") || empty.Has("e1") {
		t.Error("publish must not mount elements")
	}
}

func TestAnnealing(t *testing.T) {
	sim, _, _ := testSim(t)
	cfg := scene.DefaultConfig().Forces

	prev := sim.Alpha()
	for i := 0; i < 2000 && sim.Alpha() >= cfg.AlphaMin; i++ {
		sim.Tick()
		if sim.Alpha() > prev {
			t.Fatalf("alpha rose without perturbation: %v → %v", prev, sim.Alpha())
		}
		prev = sim.Alpha()
	}
	if sim.Alpha() >= cfg.AlphaMin {
		t.Fatal("solver never settled")
	}
	if !sim.Idle() {
		t.Error("Idle() = false after settling")
	}

	// Settled: positions stop changing.
	before, _ := sim.Position("a")
	sim.Tick()
	after, _ := sim.Position("a")
	if before != after {
		t.Errorf("settled node moved: %v → %v", before, after)
	}

	sim.Reheat()
	if sim.Idle() {
		t.Error("Idle() = true right after Reheat")
	}
}

func TestDragPin(t *testing.T) {
	sim, _, _ := testSim(t)
	pin := scene.Point{X: 200, Y: 200}

	sim.StartDrag("a")
	sim.UpdateDrag("a", pin)

	// While pinned, force computation must never move the node.
	for i := 0; i < 50; i++ {
		sim.Tick()
		p, _ := sim.Position("a")
		if p != pin {
			t.Fatalf("tick %d moved pinned node to %v", i, p)
		}
	}

	// Drag holds the energy elevated.
	cfg := scene.DefaultConfig().Forces
	if sim.Alpha() < cfg.DragAlpha {
		t.Errorf("alpha = %v while dragging, want ≥ %v", sim.Alpha(), cfg.DragAlpha)
	}

	// After release the node resumes force-driven updates within one tick.
	sim.EndDrag("a")
	sim.Tick()
	p, _ := sim.Position("a")
	if p == pin {
		t.Error("released node did not move on the next tick")
	}
}

func TestDragUnknownNodeIsNoop(t *testing.T) {
	sim, _, _ := testSim(t)
	sim.StartDrag("zz")
	sim.UpdateDrag("zz", scene.Point{X: 1, Y: 1})
	sim.EndDrag("zz")
	sim.Tick() // must not panic
}

func TestDragClampsToBounds(t *testing.T) {
	sim, _, _ := testSim(t)
	cfg := scene.DefaultConfig().Forces

	sim.StartDrag("a")
	sim.UpdateDrag("a", scene.Point{X: -500, Y: 9999})
	sim.Tick()

	p, _ := sim.Position("a")
	if p.X < cfg.Padding || p.Y > cfg.Height-cfg.Padding {
		t.Errorf("pinned position %v escaped bounds", p)
	}
}

func TestPointerAttraction(t *testing.T) {
	sim, _, _ := testSim(t)

	// Let the layout settle first, then bring the pointer near node c.
	for i := 0; i < 2000 && !sim.Idle(); i++ {
		sim.Tick()
	}
	start, _ := sim.Position("c")
	target := scene.Point{X: start.X + 60, Y: start.Y}

	sim.SetPointer(target)
	for i := 0; i < 10; i++ {
		sim.Tick()
	}
	moved, _ := sim.Position("c")
	if moved.Dist(target) >= start.Dist(target) {
		t.Errorf("node did not approach pointer: %v → %v", start.Dist(target), moved.Dist(target))
	}

	// Clearing the pointer lets the solver cool back to idle.
	sim.ClearPointer()
	for i := 0; i < 5000 && !sim.Idle(); i++ {
		sim.Tick()
	}
	if !sim.Idle() {
		t.Error("solver never re-settled after pointer left")
	}
}

func TestBoundsClamp(t *testing.T) {
	g := testGraph(t)
	cfg := scene.DefaultConfig()
	// Seed a node far outside the rectangle.
	g.Nodes[2].Seed = scene.Point{X: 5000, Y: -5000}
	stage := scene.NewStage()
	sim := New(g, stage, cfg.Forces)

	sim.Tick()
	p, _ := sim.Position("c")
	f := cfg.Forces
	if p.X < f.Padding || p.X > f.Width-f.Padding || p.Y < f.Padding || p.Y > f.Height-f.Padding {
		t.Errorf("position %v outside padded bounds", p)
	}
}

func TestMinimumSeparation(t *testing.T) {
	g, err := scene.New(scene.VariantGapRepair,
		[]scene.Node{
			{ID: "a", Seed: scene.Point{X: 400, Y: 260}, GapSource: true},
			{ID: "b", Seed: scene.Point{X: 401, Y: 260}, GapTarget: true},
		}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := scene.DefaultConfig().Forces
	sim := New(g, scene.NewStage(), cfg)

	for i := 0; i < 300; i++ {
		sim.Tick()
	}
	pa, _ := sim.Position("a")
	pb, _ := sim.Position("b")
	if d := pa.Dist(pb); d < cfg.CollideRadius*0.9 {
		t.Errorf("separation = %v, want at least ~%v", d, cfg.CollideRadius)
	}
}
