package compliance

import "github.com/codeready-toolchain/governed-agent/pkg/rules"

type dubaiAILawChecker struct{}

func (dubaiAILawChecker) Framework() Framework { return DubaiAILaw }

// Check runs the five Dubai AI Law articles this layer models.
func (dubaiAILawChecker) Check(input map[string]any, decision rules.Decision, entry any, cfg Config) []Check {
	flat := flatten(input)
	var checks []Check

	prohibited := prohibitedUsePattern.MatchString(flat)
	checks = append(checks, newCheck(DubaiAILaw, "Art. 3",
		"Prohibited AI uses must not appear in the request", "يجب ألا تظهر استخدامات الذكاء الاصطناعي المحظورة في الطلب",
		!prohibited, statusOrCompliant(!prohibited, NonCompliant),
		"Remove the prohibited use case from the request", "أزل حالة الاستخدام المحظورة من الطلب"))

	highRisk := highRiskCategoryPattern.MatchString(flat)
	hasRegistration := hasKeyContaining(input, "airegistrationid", "conformityid")
	registrationOK := !highRisk || hasRegistration
	checks = append(checks, newCheck(DubaiAILaw, "Art. 5",
		"High-risk AI categories must carry a registration or conformity id", "يجب أن تحمل فئات الذكاء الاصطناعي عالية الخطورة معرف تسجيل أو مطابقة",
		registrationOK, statusOrCompliant(registrationOK, ReviewRequired),
		"Attach an AI registration or conformity id", "أرفق معرف تسجيل أو مطابقة للذكاء الاصطناعي"))

	hasDisclosure := hasKeyContaining(input, "aidisclosure", "disclosedasai")
	checks = append(checks, newCheck(DubaiAILaw, "Art. 8",
		"End users must be informed they are interacting with AI", "يجب إبلاغ المستخدمين بأنهم يتفاعلون مع الذكاء الاصطناعي",
		hasDisclosure, statusOrCompliant(hasDisclosure, ReviewRequired),
		"Set an AI-disclosure marker", "ضع علامة إفصاح عن الذكاء الاصطناعي"))

	hasHumanInLoop := hasKeyContaining(input, "humanintheloop", "humanoversight")
	oversightOK := !highRisk || hasHumanInLoop
	checks = append(checks, newCheck(DubaiAILaw, "Art. 10",
		"High-risk AI categories require human oversight", "تتطلب فئات الذكاء الاصطناعي عالية الخطورة إشرافًا بشريًا",
		oversightOK, statusOrCompliant(oversightOK, NonCompliant),
		"Add a human-in-the-loop marker", "أضف علامة إشراف بشري"))

	hasGovernance := hasKeyContaining(input, "datagovernance", "dataprovenance")
	checks = append(checks, newCheck(DubaiAILaw, "Art. 12",
		"A data governance reference must be present", "يجب وجود مرجع لحوكمة البيانات",
		hasGovernance, statusOrCompliant(hasGovernance, ReviewRequired),
		"Reference the applicable data governance policy", "أشر إلى سياسة حوكمة البيانات المعمول بها"))

	return checks
}
