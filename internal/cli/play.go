package cli

import (
	"github.com/spf13/cobra"

	"github.com/finnvoss/glowgraph/pkg/scene"
)

func newPlayCmd() *cobra.Command {
	var (
		graphPath  string
		configPath string
		variant    string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the animated diagram in the terminal",
		Long: `Play runs the full engine interactively: the force solver lays the
diagram out live while number keys step through the narrative phases.

Without --graph a built-in demo graph is used; --variant picks which one.`,
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

			logger.Debug("starting session",
				"variant", g.Variant, "nodes", len(g.Nodes), "edges", len(g.Edges))
			return runPlayTUI(newEngine(g, cfg))
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph TOML file (default: built-in demo)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "tuning TOML file (default: compiled-in)")
	cmd.Flags().StringVar(&variant, "variant", "gap-repair", "demo variant when no graph file is given (gap-repair, known-unknown)")
	return cmd
}

// loadConfig reads a tuning file, or returns the defaults for an empty path.
func loadConfig(path string) (*scene.Config, error) {
	if path == "" {
		return scene.DefaultConfig(), nil
	}
	return scene.Load(path)
}

// resolveGraph loads a graph file, or picks the demo for the variant.
func resolveGraph(path, variant string) (*scene.Graph, error) {
	if path != "" {
		return loadGraph(path)
	}
	if scene.Variant(variant) == scene.VariantKnownUnknown {
		return demoKnownGraph()
	}
	return demoGapGraph()
}
