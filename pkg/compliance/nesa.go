package compliance

import (
	"regexp"

	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

var hexHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

type nesaChecker struct{}

func (nesaChecker) Framework() Framework { return NESA }

// Check runs the five NESA controls. Unlike the other checkers, entry must
// be an *audit.Entry (or audit.Entry) since AU-01 inspects its hash chain
// fields directly; a nil or mistyped entry fails AU-01 rather than
// panicking.
func (nesaChecker) Check(input map[string]any, decision rules.Decision, entry any, cfg Config) []Check {
	flat := flatten(input)
	var checks []Check

	hash, previousHash := entryHashes(entry)
	integrityOK := hexHashPattern.MatchString(hash) && hexHashPattern.MatchString(previousHash)
	checks = append(checks, newCheck(NESA, "AU-01",
		"Audit entries must carry well-formed hash and previousHash values", "يجب أن تحمل قيود التدقيق قيمتي تجزئة وتجزئة سابقة صحيحتي الشكل",
		integrityOK, statusOrCompliant(integrityOK, NonCompliant),
		"Ensure the entry was produced by the audit hash chain", "تأكد من إنتاج القيد عبر سلسلة تجزئة التدقيق"))

	level := incidentLevel(decision)
	checks = append(checks, newCheck(NESA, "IR-02",
		"Incidents are classified by severity: "+level, "يتم تصنيف الحوادث حسب الخطورة: "+level,
		true, Compliant, "", ""))

	dataClass := dataClassification(flat, input)
	checks = append(checks, newCheck(NESA, "DS-01",
		"Data is classified: "+dataClass, "يتم تصنيف البيانات: "+dataClass,
		true, Compliant, "", ""))

	hasAccessControl := hasKeyContaining(input, "role", "authenticatedas", "authuser")
	checks = append(checks, newCheck(NESA, "AC-01",
		"Access must carry a role or authentication marker", "يجب أن يحمل الوصول علامة دور أو مصادقة",
		hasAccessControl, statusOrCompliant(hasAccessControl, ReviewRequired),
		"Attach a role or authentication marker", "أضف علامة دور أو مصادقة"))

	needsEncryption := dataClass == "CONFIDENTIAL" || dataClass == "SECRET"
	hasEncryption := hasKeyContaining(input, "encrypted", "encryption")
	cryptoOK := !needsEncryption || hasEncryption
	checks = append(checks, newCheck(NESA, "CR-01",
		"Confidential or secret data must be marked encrypted", "يجب وضع علامة تشفير على البيانات السرية أو الحساسة",
		cryptoOK, statusOrCompliant(cryptoOK, NonCompliant),
		"Mark the data as encrypted at rest or in transit", "ضع علامة تشفير على البيانات أثناء التخزين أو النقل"))

	return checks
}

func entryHashes(entry any) (hash, previousHash string) {
	switch e := entry.(type) {
	case audit.Entry:
		return e.Hash, e.PreviousHash
	case *audit.Entry:
		if e != nil {
			return e.Hash, e.PreviousHash
		}
	}
	return "", ""
}

func incidentLevel(decision rules.Decision) string {
	switch {
	case decision.Result == rules.Rejected && decision.Score <= 20:
		return "CRITICAL"
	case decision.Result == rules.Rejected || decision.Score < 40:
		return "HIGH"
	case decision.Result == rules.Review || decision.Score < 70:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func dataClassification(flat string, input map[string]any) string {
	switch {
	case secretTokenPattern.MatchString(flat):
		return "SECRET"
	case hasPII(flat):
		return "CONFIDENTIAL"
	case len(input) > 0:
		return "INTERNAL"
	default:
		return "PUBLIC"
	}
}
