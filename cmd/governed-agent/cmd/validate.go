package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

var validateCmd = &cobra.Command{
	Use:   "validate <rules.json>",
	Short: "Load a rule set, report each rule's validity and any pairwise conflicts",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		exitWith(2)
		return fmt.Errorf("reading rules file: %w", err)
	}

	var rs []rules.Rule
	if err := json.Unmarshal(raw, &rs); err != nil {
		exitWith(2)
		return fmt.Errorf("parsing rules file: %w", err)
	}

	allValid := true
	engine := rules.NewEngine()
	for _, r := range rs {
		if err := engine.AddRule(r); err != nil {
			allValid = false
			fmt.Printf("INVALID  %-20s %v\n", r.ID, err)
			continue
		}
		fmt.Printf("VALID    %-20s condition compiles, action=%s\n", r.ID, r.Action)
	}

	conflicts := engine.DetectConflicts()
	for _, c := range conflicts {
		kind := "conflict"
		if c.Duplicate {
			kind = "duplicate"
		}
		fmt.Printf("%-9s %s\n", kind, c.Description)
	}

	if !allValid || len(conflicts) > 0 {
		exitWith(1)
		return nil
	}
	return nil
}
