package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCheckFailed indicates that at least one object file failed to load.
	ExitCodeCheckFailed = 2
)

// rootCmd represents the base command for the specsync application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "specsync",
	Short: "Keep a catalog in sync with a directory of declarative objects",
	Long: `specsync watches a flat directory of .yaml object files and keeps an
in-memory catalog of Config and Component records in sync with it.

Every file holds one object and is identified by its base name. Creating,
editing, removing and renaming files turns into created, updated and deleted
notifications; creating a file whose name ends with the stop token ends the
watch.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "specsync version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var checkFailed *CheckFailedError
	if errors.As(err, &checkFailed) {
		return ExitCodeCheckFailed
	}
	return ExitCodeError
}

// CheckFailedError reports how many files a check could not load.
type CheckFailedError struct {
	Failed int
	Total  int
}

func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("%d of %d object files failed to load", e.Failed, e.Total)
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCheckCmd())
}
