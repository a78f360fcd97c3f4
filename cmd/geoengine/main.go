// Command geoengine is a terminal front-end exercising the acquire, DEM and
// track packages end to end, standing in for the GUI's ConfigDialog/
// ProgressSink/Layer collaborators. It is demonstration and verification
// scaffolding, not a new feature surface.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"geoengine/internal/config"
	"geoengine/internal/logging"
)

var cfg *config.Config

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "geoengine",
		Short:         "Acquire, inspect and analyze GPS track data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			level, err := zerolog.ParseLevel(cfg.Logging.Level)
			if err != nil {
				level = zerolog.InfoLevel
			}
			logging.Init(cfg.Logging.Development, level)
		},
	}

	root.AddCommand(acquireCmd())
	root.AddCommand(demCmd())
	root.AddCommand(trackCmd())
	return root
}
