package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/config"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [journal.jsonl]",
	Short: "Replay an audit journal from genesis and report whether its hash chain is intact",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := config.DefaultAuditPath
	if len(args) == 1 {
		path = args[0]
	}
	if v := os.Getenv("AUDIT_PATH"); v != "" && len(args) == 0 {
		path = v
	}

	log, err := audit.Open(path)
	if err != nil {
		exitWith(2)
		return fmt.Errorf("opening audit journal: %w", err)
	}
	defer log.Close()

	report, err := log.VerifyFullDetailed()
	if err != nil {
		return fmt.Errorf("verifying audit journal: %w", err)
	}

	if report.Valid {
		fmt.Printf("OK       %d entries verified\n", report.EntriesCheck)
		return nil
	}

	fmt.Printf("BROKEN   entry %d (%s): %s\n", report.BrokenAt, report.BrokenAtID, report.Reason)
	fmt.Printf("         expected %s\n", report.Expected)
	fmt.Printf("         actual   %s\n", report.Actual)
	exitWith(1)
	return nil
}
