package agentpipeline

import (
	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

// AuditLog is the append surface a Pipeline needs. *audit.Log satisfies it
// directly. AttachCompliance writes a compliance report back into the
// stored entry identified by id, so that a Query made after a pipeline run
// reflects the same report the pipeline already attached to its own copy
// of the entry.
type AuditLog interface {
	Append(decision rules.Decision, input map[string]any) (audit.Entry, error)
	AttachCompliance(id string, report any) bool
}

// NullAuditLog discards entries instead of persisting them, for tests that
// want to exercise pipeline control flow without a journal file.
type NullAuditLog struct{}

func (NullAuditLog) Append(decision rules.Decision, input map[string]any) (audit.Entry, error) {
	return audit.Entry{
		ID:     decision.AuditID,
		Input:  input,
		Output: decision,
		Rule:   decision.MatchedRule,
	}, nil
}

func (NullAuditLog) AttachCompliance(id string, report any) bool {
	return false
}
