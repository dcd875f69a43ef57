package compliance

import "github.com/codeready-toolchain/governed-agent/pkg/rules"

type pdplChecker struct{}

func (pdplChecker) Framework() Framework { return PDPL }

// Check runs the seven PDPL articles this layer models. At AuditLevel
// Basic, Art. 3 and Art. 18 are skipped; both can only fail as
// REVIEW_REQUIRED, and every check that can fail as NON_COMPLIANT still
// runs.
func (pdplChecker) Check(input map[string]any, decision rules.Decision, entry any, cfg Config) []Check {
	flat := flatten(input)
	piiCount := countPIITypes(flat)
	personalData := piiCount > 0

	var checks []Check

	if cfg.AuditLevel != Basic {
		hasRights := hasKeyContaining(input, "datasubjectright", "righttoaccess", "righttoerasure")
		checks = append(checks, newCheck(PDPL, "Art. 3",
			"Data subject rights must be documented", "يجب توثيق حقوق صاحب البيانات",
			hasRights, statusOrCompliant(hasRights, ReviewRequired),
			"Document the applicable data subject rights", "وثّق حقوق صاحب البيانات المعمول بها"))
	}

	hasPurpose := hasKeyContaining(input, "purpose", "action", "usecase")
	checks = append(checks, newCheck(PDPL, "Art. 4",
		"Processing purpose must be explicit", "يجب أن يكون الغرض من المعالجة صريحًا",
		hasPurpose, statusOrCompliant(hasPurpose, ReviewRequired),
		"State an explicit purpose, action, or use case", "حدد غرضًا أو إجراءً أو حالة استخدام صريحة"))

	hasConsent := hasKeyContaining(input, "consent")
	consentOK := !personalData || hasConsent
	checks = append(checks, newCheck(PDPL, "Art. 6",
		"Consent is required when personal data is present", "الموافقة مطلوبة عند وجود بيانات شخصية",
		consentOK, statusOrCompliant(consentOK, NonCompliant),
		"Record an explicit consent marker", "سجّل علامة موافقة صريحة"))

	minimised := piiCount < 3
	checks = append(checks, newCheck(PDPL, "Art. 10",
		"Data minimisation: avoid collecting excessive personal data types", "تقليل البيانات: تجنب جمع أنواع مفرطة من البيانات الشخصية",
		minimised, statusOrCompliant(minimised, ReviewRequired),
		"Reduce the number of personal data categories collected", "قلل عدد فئات البيانات الشخصية المجمّعة"))

	residencyOK := true
	if cfg.DataResidency == ResidencyUAE {
		declaresResidency := hasKeyContaining(input, "region", "location", "residency")
		indicatesUAE := containsAny(flat, "\"uae\"", "\"ae\"", "united arab emirates")
		residencyOK = !declaresResidency || indicatesUAE
	}
	checks = append(checks, newCheck(PDPL, "Art. 14",
		"Data residency must match the configured jurisdiction", "يجب أن يتطابق موقع تخزين البيانات مع الولاية القضائية المحددة",
		residencyOK, statusOrCompliant(residencyOK, NonCompliant),
		"Store data within the configured residency boundary", "احتفظ بالبيانات ضمن حدود الإقامة المحددة"))

	hasSensitive := sensitiveDataPattern.MatchString(flat)
	hasSeparateConsent := hasKeyContaining(input, "sensitivedataconsent")
	sensitiveOK := !hasSensitive || hasSeparateConsent
	checks = append(checks, newCheck(PDPL, "Art. 16",
		"Sensitive data requires explicit separate consent", "تتطلب البيانات الحساسة موافقة صريحة منفصلة",
		sensitiveOK, statusOrCompliant(sensitiveOK, NonCompliant),
		"Collect a separate, explicit consent marker for sensitive data", "اجمع موافقة صريحة ومنفصلة للبيانات الحساسة"))

	if cfg.AuditLevel != Basic {
		hasBreachContact := hasKeyContaining(input, "dpo", "breachnotification", "databreachcontact")
		checks = append(checks, newCheck(PDPL, "Art. 18",
			"A breach-notification or DPO contact must be designated", "يجب تحديد جهة اتصال للإبلاغ عن الخروقات أو مسؤول حماية البيانات",
			hasBreachContact, statusOrCompliant(hasBreachContact, ReviewRequired),
			"Designate a DPO or breach-notification contact", "حدد مسؤول حماية بيانات أو جهة اتصال للإبلاغ عن الخروقات"))
	}

	return checks
}
