package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"specsync/internal/app"
)

type watchOptions struct {
	configPath string
	dir        string
	debug      bool
}

// newWatchCmd creates the long-running watch command.
func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and keep the catalog in sync",
		Long: `Watches the configured directory for object files and reports every change
to the catalog.

On start every eligible file is loaded once. After that, changes are debounced
per path and processed in order until a file whose name ends with the stop
token is created, or the process receives SIGINT or SIGTERM.

Configuration:
  Settings are read from config.yaml in the current directory, or from the
  file named by --config. Command-line flags override file settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Configuration file (default config.yaml)")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "Directory to watch (overrides watchDir)")
	cmd.Flags().Duration("debounce", 0, "Per-path quiet period before events are emitted (overrides debounce)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	cfg := app.NewConfig(opts.debug, opts.configPath)
	cfg.WatchDir = opts.dir
	if cmd.Flags().Changed("debounce") {
		d, err := cmd.Flags().GetDuration("debounce")
		if err != nil {
			return err
		}
		cfg.Debounce = &d
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
