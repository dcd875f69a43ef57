package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/governed-agent/internal/value"
	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/config"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

var decideCmd = &cobra.Command{
	Use:   "decide <rules.json> <facts.json>",
	Short: "Evaluate facts against a rule set, append the decision to the audit journal, and print it",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecide,
}

func init() {
	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) error {
	rulesRaw, err := os.ReadFile(args[0])
	if err != nil {
		exitWith(2)
		return fmt.Errorf("reading rules file: %w", err)
	}
	var rs []rules.Rule
	if err := json.Unmarshal(rulesRaw, &rs); err != nil {
		exitWith(2)
		return fmt.Errorf("parsing rules file: %w", err)
	}

	factsRaw, err := os.ReadFile(args[1])
	if err != nil {
		exitWith(2)
		return fmt.Errorf("reading facts file: %w", err)
	}
	var factsMap map[string]any
	if err := json.Unmarshal(factsRaw, &factsMap); err != nil {
		exitWith(2)
		return fmt.Errorf("parsing facts file: %w", err)
	}

	engine := rules.NewEngine()
	if err := engine.LoadRules(rs); err != nil {
		exitWith(2)
		return fmt.Errorf("loading rules: %w", err)
	}

	facts := value.FromMap(factsMap)
	decision := engine.Evaluate(facts)

	auditPath := os.Getenv("AUDIT_PATH")
	if auditPath == "" {
		auditPath = config.DefaultAuditPath
	}
	log, err := audit.Open(auditPath)
	if err != nil {
		return fmt.Errorf("opening audit journal: %w", err)
	}
	defer log.Close()

	if _, err := log.Append(decision, factsMap); err != nil {
		return fmt.Errorf("appending to audit journal: %w", err)
	}

	ruleName := "(no match)"
	if decision.MatchedRule != nil {
		ruleName = decision.MatchedRule.Name
	}
	fmt.Printf("result:    %s\n", decision.Result)
	fmt.Printf("score:     %d\n", decision.Score)
	fmt.Printf("reason:    %s\n", decision.Reason)
	fmt.Printf("rule:      %s\n", ruleName)
	fmt.Printf("auditId:   %s\n", decision.AuditID)
	return nil
}
