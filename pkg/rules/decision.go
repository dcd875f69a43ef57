package rules

// Decision is the outcome of evaluating Facts against a rule set.
//
// ComplianceReport is typed `any` rather than a concrete compliance.Report
// to avoid an import cycle: the compliance layer's checkers take a
// Decision as input, so Decision cannot import the compliance package.
// The agent pipeline assigns a compliance.Report value here; nothing in
// this package inspects its contents.
type Decision struct {
	Result      Action `json:"result"`
	MatchedRule *Rule  `json:"matchedRule"`
	Reason      string `json:"reason"`
	Score       int    `json:"score"`
	AuditID     string `json:"auditId"`
	// Confidence is optional; the rule engine and the agent pipeline leave
	// it nil. The compliance layer's reliability check prefers this over
	// Score/100 when present.
	Confidence       *float64 `json:"confidence,omitempty"`
	ComplianceReport any      `json:"complianceReport,omitempty"`
}

// NoMatchReason is the reason recorded when no rule's condition matched.
const NoMatchReason = "No matching rule found — manual review required"
