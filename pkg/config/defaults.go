package config

// DefaultAuditPath is used when neither the YAML file nor AUDIT_PATH set
// one explicitly.
const DefaultAuditPath = "./data/audit.jsonl"

// Defaults returns the configuration merged under any user-supplied YAML:
// a conservative framework subset, bilingual summaries, full audit depth,
// and no residency constraint.
func Defaults() *Config {
	return &Config{
		AuditPath: DefaultAuditPath,
		Compliance: ComplianceConfig{
			Frameworks:    []string{"PDPL", "UAE_AI_ETHICS"},
			Language:      "both",
			AuditLevel:    "full",
			DataResidency: "ANY",
		},
	}
}
