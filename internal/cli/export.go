package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finnvoss/glowgraph/pkg/bloom"
	"github.com/finnvoss/glowgraph/pkg/errors"
	"github.com/finnvoss/glowgraph/pkg/export"
)

func newExportCmd() *cobra.Command {
	var (
		graphPath  string
		configPath string
		variant    string
		format     string
		output     string
		useBloom   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a DOT or SVG snapshot of a diagram",
		Long: `Export renders a static snapshot of a narrative graph or the generated
bloom layout. DOT output pins every node at its seed position; SVG runs
the DOT through Graphviz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			var dot string
			if useBloom {
				l := bloom.Generate(bloom.DefaultTemplate(), cfg)
				dot = export.BloomToDOT(l, cfg)
			} else {
				g, err := resolveGraph(graphPath, variant)
				if err != nil {
					return err
				}
				dot = export.GraphToDOT(g, nil, cfg)
			}

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				prog := newProgress(logger)
				data, err = export.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				prog.done("Rendered SVG")
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot or svg)", format)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("wrote snapshot", "path", output, "bytes", len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph TOML file (default: built-in demo)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "tuning TOML file (default: compiled-in)")
	cmd.Flags().StringVar(&variant, "variant", "gap-repair", "demo variant when no graph file is given")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format (dot, svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path (- for stdout)")
	cmd.Flags().BoolVar(&useBloom, "bloom", false, "export the generated bloom layout instead of a graph")
	return cmd
}
