package compliance

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	emailPattern            = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	uaeNationalIDPattern    = regexp.MustCompile(`784-\d{4}-\d{7}-\d`)
	uaePhonePattern         = regexp.MustCompile(`(\+971|00971|0)5\d{8}`)
	passportPattern         = regexp.MustCompile(`\b[a-z]\d{6,8}\b`)
	secretTokenPattern      = regexp.MustCompile(`api_key|password|private_key|secret|token=|-----begin`)
	biasTokenPattern        = regexp.MustCompile(`\b(race|religion|gender|ethnicity|nationality|disability|age)\b`)
	prohibitedUsePattern    = regexp.MustCompile(`deepfake|social scoring|mass surveillance|subliminal manipulation`)
	highRiskCategoryPattern = regexp.MustCompile(`high-risk|high risk|biometric|credit scoring|law enforcement|critical infrastructure`)
	sensitiveDataPattern    = regexp.MustCompile(`health record|healthrecord|biometric|religion|criminal record|criminalrecord|sexual life|genetic data|geneticdata`)
)

// flatten renders input as lowercased JSON text. The framework checkers
// substring-match over this representation rather than walking typed
// fields — an approximate heuristic that can false-positive (a field named
// password_policy_version matches the password marker) but matches the
// observable contract these checkers reproduce; see DESIGN.md.
func flatten(input map[string]any) string {
	body, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(body))
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func hasPII(flat string) bool {
	return emailPattern.MatchString(flat) ||
		uaeNationalIDPattern.MatchString(flat) ||
		uaePhonePattern.MatchString(flat) ||
		passportPattern.MatchString(flat)
}

func countPIITypes(flat string) int {
	n := 0
	for _, re := range []*regexp.Regexp{emailPattern, uaeNationalIDPattern, uaePhonePattern, passportPattern} {
		if re.MatchString(flat) {
			n++
		}
	}
	return n
}

// hasKeyContaining walks v (expected to be a map[string]any / []any tree,
// as decoded from JSON) looking for a map key whose lowercased name
// contains one of substrs and whose value is truthy.
func hasKeyContaining(v any, substrs ...string) bool {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			lk := strings.ToLower(k)
			for _, s := range substrs {
				if strings.Contains(lk, strings.ToLower(s)) && truthy(val) {
					return true
				}
			}
			if hasKeyContaining(val, substrs...) {
				return true
			}
		}
	case []any:
		for _, item := range t {
			if hasKeyContaining(item, substrs...) {
				return true
			}
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		return true
	}
}
