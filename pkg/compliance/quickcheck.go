package compliance

import "github.com/codeready-toolchain/governed-agent/pkg/rules"

// QuickResult is the lightweight advisory result of QuickCheck.
type QuickResult struct {
	Passed bool
	Issues []Check
}

// QuickCheck runs only the PDPL and AI-Ethics checkers and collects the
// NON_COMPLIANT issues, for callers that want a fast pre-flight signal
// without the full aggregate report or an audit entry to inspect.
func QuickCheck(input map[string]any, decision rules.Decision) QuickResult {
	cfg := Config{
		Frameworks:    []Framework{PDPL, UAEAIEthics},
		Language:      LangEN,
		AuditLevel:    Full,
		DataResidency: ResidencyAny,
	}

	var checks []Check
	checks = append(checks, pdplChecker{}.Check(input, decision, nil, cfg)...)
	checks = append(checks, aiEthicsChecker{}.Check(input, decision, nil, cfg)...)

	var issues []Check
	for _, c := range checks {
		if c.Status == NonCompliant {
			issues = append(issues, c)
		}
	}
	return QuickResult{Passed: len(issues) == 0, Issues: issues}
}
