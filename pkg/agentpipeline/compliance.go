package agentpipeline

import (
	"github.com/codeready-toolchain/governed-agent/pkg/compliance"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

// ComplianceLayer is the evaluation surface a Pipeline needs. entry is
// passed through untyped, matching compliance.Checker's own signature.
type ComplianceLayer interface {
	Evaluate(input map[string]any, decision rules.Decision, entry any) (compliance.Report, error)
}

// DefaultComplianceLayer evaluates the configured framework set via
// compliance.Evaluate.
type DefaultComplianceLayer struct {
	Config compliance.Config
}

func (d DefaultComplianceLayer) Evaluate(input map[string]any, decision rules.Decision, entry any) (compliance.Report, error) {
	return compliance.Evaluate(input, decision, entry, d.Config)
}

// NullComplianceLayer always reports COMPLIANT with zero checks, for tests
// that want to isolate pipeline control flow from the compliance layer.
type NullComplianceLayer struct{}

func (NullComplianceLayer) Evaluate(input map[string]any, decision rules.Decision, entry any) (compliance.Report, error) {
	return compliance.Report{OverallStatus: compliance.Compliant, Score: 100}, nil
}
