package compliance

import (
	"fmt"
	"math"

	"github.com/codeready-toolchain/governed-agent/internal/ids"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

// hashPayload mirrors Report's {reportId, timestamp, checks, frameworks}
// fields in the order the audit hash is specified over.
type hashPayload struct {
	ReportID   string      `json:"reportId"`
	Timestamp  string      `json:"timestamp"`
	Checks     []Check     `json:"checks"`
	Frameworks []Framework `json:"frameworks"`
}

// Evaluate runs every checker configured in cfg.Frameworks, in framework
// declaration order, concatenating each checker's article-ordered checks,
// then derives overallStatus, score, bilingual summaries, and the report's
// own content hash.
func Evaluate(input map[string]any, decision rules.Decision, entry any, cfg Config) (Report, error) {
	var checks []Check
	for _, fw := range cfg.Frameworks {
		checker, ok := registry[fw]
		if !ok {
			return Report{}, fmt.Errorf("compliance: no checker registered for framework %q", fw)
		}
		checks = append(checks, checker.Check(input, decision, entry, cfg)...)
	}

	report := Report{
		ReportID:   ids.New(),
		Timestamp:  nowISO(),
		Frameworks: cfg.Frameworks,
		Checks:     checks,
	}
	report.OverallStatus = overallStatus(checks)
	report.Score = scoreOf(checks)
	report.SummaryEN, report.SummaryAR = summaries(checks, cfg.Language)

	body, err := ids.Canonical(hashPayload{
		ReportID:   report.ReportID,
		Timestamp:  report.Timestamp,
		Checks:     report.Checks,
		Frameworks: report.Frameworks,
	})
	if err != nil {
		return Report{}, fmt.Errorf("compliance: hashing report: %w", err)
	}
	report.AuditHash = ids.SHA256Hex(body)

	return report, nil
}

// Degenerate returns the synthetic REVIEW_REQUIRED report a failing
// evaluation falls back to: zero checks, a reason embedded in the summary,
// and an overall status that forces manual review rather than propagating
// the error.
func Degenerate(reason string) Report {
	summary := fmt.Sprintf("compliance evaluation failed: %s", reason)
	report := Report{
		ReportID:      ids.New(),
		Timestamp:     nowISO(),
		OverallStatus: ReviewRequired,
		Score:         0,
		SummaryEN:     summary,
		SummaryAR:     "فشل تقييم الامتثال: " + reason,
	}
	body, err := ids.Canonical(hashPayload{ReportID: report.ReportID, Timestamp: report.Timestamp})
	if err == nil {
		report.AuditHash = ids.SHA256Hex(body)
	}
	return report
}

func overallStatus(checks []Check) Status {
	hasNonCompliant, hasReview := false, false
	for _, c := range checks {
		switch c.Status {
		case NonCompliant:
			hasNonCompliant = true
		case ReviewRequired:
			hasReview = true
		}
	}
	switch {
	case hasNonCompliant:
		return NonCompliant
	case hasReview:
		return ReviewRequired
	default:
		return Compliant
	}
}

func scoreOf(checks []Check) int {
	if len(checks) == 0 {
		return 100
	}
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return int(math.Round(100 * float64(passed) / float64(len(checks))))
}

func summaries(checks []Check, lang Language) (en, ar string) {
	total := len(checks)
	passed, nonCompliant, review := 0, 0, 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
		switch c.Status {
		case NonCompliant:
			nonCompliant++
		case ReviewRequired:
			review++
		}
	}
	enSummary := fmt.Sprintf("Passed %d/%d checks. Non-compliant: %d. Review-required: %d.", passed, total, nonCompliant, review)
	arSummary := fmt.Sprintf("تم اجتياز %d/%d فحصًا. غير متوافق: %d. يتطلب المراجعة: %d.", passed, total, nonCompliant, review)

	switch lang {
	case LangEN:
		return enSummary, ""
	case LangAR:
		return "", arSummary
	default:
		return enSummary, arSummary
	}
}
