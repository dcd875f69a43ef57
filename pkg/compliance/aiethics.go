package compliance

import (
	"strings"

	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

type aiEthicsChecker struct{}

func (aiEthicsChecker) Framework() Framework { return UAEAIEthics }

// Check runs the six UAE AI Ethics principles. Privacy delegates to the
// PDPL checker rather than duplicating its pattern matching.
func (aiEthicsChecker) Check(input map[string]any, decision rules.Decision, entry any, cfg Config) []Check {
	flat := flatten(input)
	var checks []Check

	biased := biasTokenPattern.MatchString(flat)
	checks = append(checks, newCheck(UAEAIEthics, "Inclusiveness",
		"Decisions must avoid bias against protected demographic attributes", "يجب أن تتجنب القرارات التحيز ضد الصفات الديموغرافية المحمية",
		!biased, statusOrCompliant(!biased, ReviewRequired),
		"Review the input for bias-sensitive demographic tokens", "راجع المدخلات بحثًا عن رموز ديموغرافية حساسة للتحيز"))

	confidence := decisionConfidence(decision, input)
	reliable := confidence >= 0.60
	checks = append(checks, newCheck(UAEAIEthics, "Reliability",
		"Decision confidence must meet the reliability threshold", "يجب أن تفي ثقة القرار بعتبة الموثوقية",
		reliable, statusOrCompliant(reliable, ReviewRequired),
		"Raise confidence above 0.60 or route to manual review", "ارفع مستوى الثقة فوق 0.60 أو حوّل إلى مراجعة يدوية"))

	hasExplanationMarker := hasKeyContaining(input, "explanation", "explainable")
	hasDescriptiveReason := len(strings.TrimSpace(decision.Reason)) > 10
	transparent := decision.AuditID != "" && (hasExplanationMarker || hasDescriptiveReason)
	checks = append(checks, newCheck(UAEAIEthics, "Transparency",
		"Decisions must carry an audit id and an explanation", "يجب أن تحمل القرارات معرف تدقيق وتفسيرًا",
		transparent, statusOrCompliant(transparent, ReviewRequired),
		"Attach an explanation marker or a descriptive reason", "أضف علامة تفسير أو سببًا وصفيًا"))

	leaksSecrets := secretTokenPattern.MatchString(flat)
	checks = append(checks, newCheck(UAEAIEthics, "Security",
		"Input must not carry credential-like tokens", "يجب ألا تحمل المدخلات رموزًا شبيهة ببيانات الاعتماد",
		!leaksSecrets, statusOrCompliant(!leaksSecrets, NonCompliant),
		"Remove credential-like tokens from the input", "أزل الرموز الشبيهة ببيانات الاعتماد من المدخلات"))

	needsOversight := decision.Result != rules.Approved || confidence < 0.75
	hasOversight := hasKeyContaining(input, "humanoversight", "reviewedby", "approvedby")
	accountable := !needsOversight || hasOversight
	checks = append(checks, newCheck(UAEAIEthics, "Accountability",
		"Non-approved or low-confidence decisions require human oversight", "تتطلب القرارات غير المعتمدة أو منخفضة الثقة إشرافًا بشريًا",
		accountable, statusOrCompliant(accountable, ReviewRequired),
		"Record a human-oversight marker", "سجّل علامة إشراف بشري"))

	pdplChecks := pdplChecker{}.Check(input, decision, entry, cfg)
	privacyOK := allPassed(pdplChecks)
	checks = append(checks, newCheck(UAEAIEthics, "Privacy",
		"Privacy handling must satisfy the PDPL checks", "يجب أن تستوفي معالجة الخصوصية فحوصات قانون حماية البيانات الشخصية",
		privacyOK, statusOrCompliant(privacyOK, NonCompliant),
		"Resolve the failing PDPL checks", "عالج فحوصات قانون حماية البيانات الشخصية غير المجتازة"))

	return checks
}

func allPassed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func decisionConfidence(decision rules.Decision, input map[string]any) float64 {
	if decision.Confidence != nil {
		return *decision.Confidence
	}
	return float64(decision.Score) / 100
}
