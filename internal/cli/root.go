package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the glowgraph CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (play, bloom,
// export, serve), configures logging based on the --verbose flag, and
// executes the command tree. The logger is attached to the context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "glowgraph",
		Short:        "Glowgraph animates scroll-reactive node-and-edge diagrams",
		Long:         `Glowgraph is an animation and layout engine for node-and-edge diagrams: an annealed force solver keeps the layout alive, a timeline engine choreographs phase transitions, and a procedural generator blooms decorative layouts from deterministic templates.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("glowgraph %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newBloomCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
