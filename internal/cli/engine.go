package cli

import (
	"github.com/finnvoss/glowgraph/pkg/choreo"
	"github.com/finnvoss/glowgraph/pkg/physics"
	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

// engine bundles one diagram session: the graph, the shared attribute stage,
// the force solver, the timeline player and the phase controller. It is not
// safe for concurrent use; callers serialize access (the TUI on the bubbletea
// loop, the HTTP server behind a mutex).
type engine struct {
	graph      *scene.Graph
	cfg        *scene.Config
	stage      *scene.Stage
	sim        *physics.Simulation
	player     *timeline.Player
	controller *choreo.Controller
}

// newEngine mounts every element and enters the resting phase.
func newEngine(g *scene.Graph, cfg *scene.Config) *engine {
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
	ctrl := choreo.NewController(g, stage, sim, player, cfg)
	_ = ctrl.EnterPhase(choreo.PhaseResting) // resting is always in vocabulary

	return &engine{
		graph:      g,
		cfg:        cfg,
		stage:      stage,
		sim:        sim,
		player:     player,
		controller: ctrl,
	}
}

// step advances one frame: the solver writes geometry first, then the
// timeline player mutates everything else. The ordering keeps a phase built
// mid-frame reading positions no older than the current tick.
func (e *engine) step(dt float64) {
	e.sim.Tick()
	e.player.Advance(dt)
}
