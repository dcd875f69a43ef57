// Package cmd implements the governed-agent CLI: validate, decide, and
// verify subcommands over a rule set and an audit journal.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/governed-agent/pkg/logging"
	"github.com/codeready-toolchain/governed-agent/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "governed-agent",
	Short:   "Deterministic policy decisions over LM calls, with a tamper-evident audit trail",
	Version: version.Full(),
}

// Execute runs the CLI and returns the error the selected subcommand
// produced, if any.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logging.Setup(level, logging.Text)
	})
}

// exitWith is a variable so tests can stub it out instead of killing the
// test binary.
var exitWith = func(code int) {
	os.Exit(code)
}
