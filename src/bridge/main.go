package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uber/debug-bridge/src/bridge/app"
	"github.com/uber/debug-bridge/src/bridge/internal/core"
	"go.uber.org/fx"
)

var _version = "dev"

func opts(cfg core.ConfigOptions) fx.Option {
	return fx.Options(
		app.Module,
		fx.Supply(cfg),
	)
}

// newRootCommand creates the root command. Flags left empty fall back to BRIDGE_CONFIG_DIR and BRIDGE_ENVIRONMENT.
func newRootCommand() *cobra.Command {
	var cfg core.ConfigOptions

	rootCmd := &cobra.Command{
		Use:     "debug-bridge",
		Short:   "Bridge remote debugging of a managed runtime to JSON-RPC controllers",
		Version: _version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fxApp := fx.New(opts(cfg))
			if err := fxApp.Err(); err != nil {
				return fmt.Errorf("building application: %w", err)
			}
			fxApp.Run()
			return nil
		},
	}

	rootCmd.Flags().StringVar(&cfg.Dir, "config-dir", "", "Directory holding meta.yaml and the files it lists")
	rootCmd.Flags().StringVar(&cfg.Environment, "env", "", "Environment overlay to merge on top of the base configuration")
	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
