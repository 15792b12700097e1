package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/finnvoss/glowgraph/pkg/bloom"
	"github.com/finnvoss/glowgraph/pkg/export"
	"github.com/finnvoss/glowgraph/pkg/scene"
	"github.com/finnvoss/glowgraph/pkg/timeline"
)

func newBloomCmd() *cobra.Command {
	var (
		configPath string
		dotPath    string
		play       bool
	)

	cmd := &cobra.Command{
		Use:   "bloom",
		Short: "Generate the procedural bloom layout",
		Long: `Bloom stamps the built-in petal template into a full decorative layout
and plans its reveal sequence. Generation is deterministic: the same
tuning always yields the same coordinates, reveal order and breathing
subset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			l := bloom.Generate(bloom.DefaultTemplate(), cfg)
			plan := l.Plan(cfg)
			prog.done(fmt.Sprintf("Generated %d nodes, %d edges", len(l.Nodes), len(l.Edges)))

			if dotPath != "" {
				if err := os.WriteFile(dotPath, []byte(export.BloomToDOT(l, cfg)), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dotPath, err)
				}
				logger.Info("wrote DOT snapshot", "path", dotPath)
			}

			if play {
				return runBloomTUI(l, plan, cfg)
			}

			printBloomSummary(cmd, l, plan, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "tuning TOML file (default: compiled-in)")
	cmd.Flags().StringVar(&dotPath, "dot", "", "write a DOT snapshot to this path")
	cmd.Flags().BoolVar(&play, "play", false, "play the reveal sequence in the terminal")
	return cmd
}

func printBloomSummary(cmd *cobra.Command, l *bloom.Layout, plan *bloom.Plan, cfg *scene.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, StyleTitle.Render("Bloom layout"))
	fmt.Fprintf(out, "  %s %s\n", StyleDim.Render("nodes"), StyleValue.Render(fmt.Sprint(len(l.Nodes))))
	fmt.Fprintf(out, "  %s %s\n", StyleDim.Render("edges"), StyleValue.Render(fmt.Sprint(len(l.Edges))))
	fmt.Fprintf(out, "  %s %s\n", StyleDim.Render("reveal span"),
		StyleValue.Render(fmt.Sprintf("%.1fs", cfg.Bloom.RevealSpan)))
	fmt.Fprintf(out, "  %s %s\n", StyleDim.Render("breathing"),
		StyleValue.Render(fmt.Sprintf("%d of %d elements", len(plan.Breathing), len(l.Nodes)+len(l.Edges))))

	fmt.Fprintln(out)
	fmt.Fprintln(out, StyleDim.Render("first reveals:"))
	for i, r := range plan.Nodes {
		if i >= 5 {
			break
		}
		fmt.Fprintf(out, "  %s  %s\n", StyleValue.Render(fmt.Sprintf("%5.2fs", r.At)), r.ID)
	}
}

// =============================================================================
// Bloom TUI
// =============================================================================

// bloomModel plays the one-shot reveal. There is no solver here; geometry is
// final at generation time and only the timeline player runs.
type bloomModel struct {
	layout *bloom.Layout
	cfg    *scene.Config
	stage  *scene.Stage
	player *timeline.Player

	width  int
	height int
}

func runBloomTUI(l *bloom.Layout, plan *bloom.Plan, cfg *scene.Config) error {
	stage := scene.NewStage()
	l.Mount(stage, cfg)
	player := timeline.NewPlayer(stage)
	player.Start(l.BuildTimeline(plan, cfg))

	m := bloomModel{layout: l, cfg: cfg, stage: stage, player: player}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m bloomModel) Init() tea.Cmd {
	return frameTick()
}

func (m bloomModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.player.Advance(frameInterval.Seconds())
		return m, frameTick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m bloomModel) View() string {
	if m.width < 20 || m.height < 8 {
		return "terminal too small"
	}

	w, h := m.width, m.height-2
	cells := make([]string, w*h)
	sx := float64(w-1) / m.cfg.Forces.Width
	sy := float64(h-1) / m.cfg.Forces.Height

	for _, n := range m.layout.Nodes {
		op, _ := m.stage.Number(n.ID, scene.AttrDotOpacity)
		if op <= 0.05 {
			continue
		}
		x, y := int(n.Pos.X*sx), int(n.Pos.Y*sy)
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		style := lipgloss.NewStyle()
		if hex, ok := m.stage.String(n.ID, scene.AttrDotFill); ok {
			style = style.Foreground(lipgloss.Color(hex))
		}
		if op < 0.6 {
			style = style.Faint(true)
		}
		cells[y*w+x] = style.Render("●")
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := cells[y*w+x]; c != "" {
				b.WriteString(c)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("t=%.1fs  q quit", m.player.Now())))
	return b.String()
}
