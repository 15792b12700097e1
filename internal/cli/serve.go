package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/finnvoss/glowgraph/pkg/choreo"
	glowerrors "github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/export"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		graphPath  string
		configPath string
		variant    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose phase transitions and live geometry over HTTP",
		Long: `Serve runs the engine headless at a fixed frame rate and exposes it over
HTTP: POST phase transitions, read live positions, pull SVG snapshots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			g, err := resolveGraph(graphPath, variant)
			if err != nil {
				return err
			}

			s := newServer(newEngine(g, cfg), logger)
			return s.run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph TOML file (default: built-in demo)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "tuning TOML file (default: compiled-in)")
	cmd.Flags().StringVar(&variant, "variant", "gap-repair", "demo variant when no graph file is given")
	return cmd
}

// server serializes all engine access behind one mutex: the engine itself is
// single-threaded by design and the frame loop and handlers race otherwise.
type server struct {
	mu     sync.Mutex
	eng    *engine
	logger *charmlog.Logger
}

func newServer(eng *engine, logger *charmlog.Logger) *server {
	return &server{eng: eng, logger: logger}
}

func (s *server) run(ctx context.Context, addr string) error {
	stop := make(chan struct{})
	go s.frameLoop(stop)
	defer close(stop)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// frameLoop steps the engine at the same cadence the TUI uses.
func (s *server) frameLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.eng.step(frameInterval.Seconds())
			s.mu.Unlock()
		}
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/phase", s.handleGetPhase)
	r.Post("/phase/{name}", s.handleEnterPhase)
	r.Get("/positions", s.handlePositions)
	r.Post("/pointer", s.handleSetPointer)
	r.Delete("/pointer", s.handleClearPointer)
	r.Post("/reheat", s.handleReheat)
	r.Get("/export.svg", s.handleExportSVG)
	return r
}

func (s *server) handleGetPhase(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	current := s.eng.controller.Current()
	phases := s.eng.graph.Variant
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"current": current,
		"variant": phases,
	})
}

func (s *server) handleEnterPhase(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	err := s.eng.controller.EnterPhase(choreo.Phase(name))
	current := s.eng.controller.Current()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("phase rejected", "name", name, "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": glowerrors.UserMessage(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"current": current})
}

func (s *server) handlePositions(w http.ResponseWriter, _ *http.Request) {
	type pos struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	s.mu.Lock()
	out := make(map[string]pos, len(s.eng.graph.Nodes))
	for _, n := range s.eng.graph.Nodes {
		if p, ok := s.eng.stage.Position(n.ID); ok {
			out[n.ID] = pos{X: p.X, Y: p.Y}
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleSetPointer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid body"})
		return
	}

	s.mu.Lock()
	s.eng.sim.SetPointer(scene.Point{X: body.X, Y: body.Y})
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleClearPointer(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.eng.sim.ClearPointer()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleReheat(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.eng.sim.Reheat()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dot := export.GraphToDOT(s.eng.graph, s.eng.stage, s.eng.cfg)
	s.mu.Unlock()

	svg, err := export.RenderSVG(r.Context(), dot)
	if err != nil {
		s.logger.Error("svg render failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "render failed"})
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
