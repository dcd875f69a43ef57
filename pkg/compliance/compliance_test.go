package compliance_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/compliance"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

func approvedDecision() rules.Decision {
	return rules.Decision{
		Result:  rules.Approved,
		Reason:  "matched the default approval rule",
		Score:   90,
		AuditID: "audit-1",
	}
}

func TestPDPL_SensitiveDataWithConsentPasses(t *testing.T) {
	input := map[string]any{
		"healthRecord":         "diabetes",
		"sensitiveDataConsent": true,
		"purpose":              "care",
	}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.PDPL}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	art16 := findCheck(t, report.Checks, "Art. 16")
	assert.True(t, art16.Passed)
}

func TestPDPL_SensitiveDataWithoutConsentFails(t *testing.T) {
	input := map[string]any{"healthRecord": "diabetes"}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.PDPL}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	art16 := findCheck(t, report.Checks, "Art. 16")
	assert.False(t, art16.Passed)
	assert.Equal(t, compliance.NonCompliant, art16.Status)
}

func TestPDPL_BasicAuditLevelSkipsInformationalChecks(t *testing.T) {
	input := map[string]any{"purpose": "onboarding"}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.PDPL}, Language: compliance.LangEN, AuditLevel: compliance.Basic}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	for _, c := range report.Checks {
		assert.NotEqual(t, "Art. 3", c.Article)
		assert.NotEqual(t, "Art. 18", c.Article)
	}
}

func TestAggregate_OverallStatusPrecedence(t *testing.T) {
	input := map[string]any{
		"email":   "user@example.com",
		"phone":   "user phone 0501234567",
		"purpose": "marketing",
	}
	cfg := compliance.Config{
		Frameworks: []compliance.Framework{compliance.PDPL},
		Language:   compliance.LangBoth,
		AuditLevel: compliance.Full,
	}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, compliance.NonCompliant, report.OverallStatus)
	assert.NotEmpty(t, report.SummaryEN)
	assert.NotEmpty(t, report.SummaryAR)
	assert.NotEmpty(t, report.AuditHash)
}

func TestAggregate_ZeroChecksScoresHundred(t *testing.T) {
	cfg := compliance.Config{Frameworks: nil, Language: compliance.LangEN}
	report, err := compliance.Evaluate(map[string]any{}, approvedDecision(), nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, compliance.Compliant, report.OverallStatus)
}

func TestNESA_AuditIntegrityUsesEntryHashes(t *testing.T) {
	entry := audit.Entry{
		Hash:         strings.Repeat("1", 64),
		PreviousHash: audit.GenesisHash,
	}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.NESA}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(map[string]any{}, approvedDecision(), entry, cfg)
	require.NoError(t, err)

	au01 := findCheck(t, report.Checks, "AU-01")
	assert.True(t, au01.Passed)
}

func TestNESA_AuditIntegrityFailsWithoutEntry(t *testing.T) {
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.NESA}, Language: compliance.LangEN, AuditLevel: compliance.Full}
	report, err := compliance.Evaluate(map[string]any{}, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	au01 := findCheck(t, report.Checks, "AU-01")
	assert.False(t, au01.Passed)
}

func TestDubai_ProhibitedUseFailsArt3(t *testing.T) {
	input := map[string]any{"useCase": "deepfake_generation"}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.DubaiAILaw}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	art3 := findCheck(t, report.Checks, "Art. 3")
	assert.False(t, art3.Passed)
	assert.Equal(t, compliance.NonCompliant, art3.Status)
	assert.Equal(t, compliance.NonCompliant, report.OverallStatus)
}

func TestDubai_HighRiskWithoutRegistrationRequiresReview(t *testing.T) {
	input := map[string]any{"category": "biometric identification"}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.DubaiAILaw}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	art5 := findCheck(t, report.Checks, "Art. 5")
	assert.False(t, art5.Passed)
	assert.Equal(t, compliance.ReviewRequired, art5.Status)

	art10 := findCheck(t, report.Checks, "Art. 10")
	assert.False(t, art10.Passed)
	assert.Equal(t, compliance.NonCompliant, art10.Status)
}

func TestDubai_HighRiskWithRegistrationAndOversightPasses(t *testing.T) {
	input := map[string]any{
		"category":          "biometric identification",
		"aiRegistrationId":  "reg-123",
		"humanInTheLoop":    true,
		"aiDisclosure":      true,
		"dataGovernanceRef": "policy-7",
	}
	cfg := compliance.Config{Frameworks: []compliance.Framework{compliance.DubaiAILaw}, Language: compliance.LangEN, AuditLevel: compliance.Full}

	report, err := compliance.Evaluate(input, approvedDecision(), nil, cfg)
	require.NoError(t, err)

	for _, article := range []string{"Art. 5", "Art. 8", "Art. 10", "Art. 12"} {
		c := findCheck(t, report.Checks, article)
		assert.True(t, c.Passed, "expected %s to pass", article)
	}
	assert.Equal(t, compliance.Compliant, report.OverallStatus)
}

func TestQuickCheck_CollectsOnlyNonCompliantIssues(t *testing.T) {
	input := map[string]any{"password": "hunter2"}
	result := compliance.QuickCheck(input, approvedDecision())
	assert.False(t, result.Passed)
	for _, issue := range result.Issues {
		assert.Equal(t, compliance.NonCompliant, issue.Status)
	}
}

func findCheck(t *testing.T, checks []compliance.Check, article string) compliance.Check {
	t.Helper()
	for _, c := range checks {
		if c.Article == article {
			return c
		}
	}
	t.Fatalf("no check found for article %q", article)
	return compliance.Check{}
}
