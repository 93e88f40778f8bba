package cmd

import (
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"specsync/internal/app"
	"specsync/internal/config"
	"specsync/internal/formatting"
)

type checkOptions struct {
	dir     string
	output  string
	noColor bool
}

// newCheckCmd creates the one-shot check command.
func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load every object file once and report the result",
		Long: `Loads every .yaml file in the directory once, without watching, and prints
one line per file ordered by file name.

The command exits with status 2 if any file fails to load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", config.DefaultWatchDir, "Directory to check")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(formatting.FormatTable), "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	format, err := formatting.ParseFormat(opts.output)
	if err != nil {
		return err
	}

	rows, failed, err := app.Check(opts.dir)
	if err != nil {
		return err
	}

	formatter := formatting.New(formatting.Options{
		Format: format,
		Color:  !opts.noColor && text.ANSICodesSupported,
		Output: cmd.OutOrStdout(),
	})
	if err := formatter.FormatRows(rows); err != nil {
		return err
	}

	if failed > 0 {
		return &CheckFailedError{Failed: failed, Total: len(rows)}
	}
	return nil
}
