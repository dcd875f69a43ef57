package config

import (
	"fmt"

	"github.com/codeready-toolchain/governed-agent/pkg/compliance"
	"github.com/codeready-toolchain/governed-agent/pkg/expr"
)

var validFrameworks = map[string]bool{
	"PDPL": true, "UAE_AI_ETHICS": true, "NESA": true, "DUBAI_AI_LAW": true, "ADGM": true,
}

var validLanguages = map[string]bool{"en": true, "ar": true, "both": true}
var validAuditLevels = map[string]bool{"basic": true, "full": true}
var validResidencies = map[string]bool{"UAE": true, "ANY": true}

// Validate checks structural invariants Load cannot enforce via mergo
// alone: every rule's condition must compile and its action must be one
// of the closed set, and the compliance sub-config's enums must be known
// values.
func Validate(cfg *Config) error {
	if cfg.AuditPath == "" {
		return &ValidationError{Component: "config", ID: "audit_path", Err: ErrMissingRequiredField}
	}

	for _, r := range cfg.Rules {
		if r.ID == "" {
			return &ValidationError{Component: "rule", ID: "(unnamed)", Field: "id", Err: ErrMissingRequiredField}
		}
		if _, err := expr.Compile(r.Condition); err != nil {
			return &ValidationError{Component: "rule", ID: r.ID, Field: "condition", Err: err}
		}
		switch r.Action {
		case "APPROVED", "REJECTED", "REVIEW":
		default:
			return &ValidationError{Component: "rule", ID: r.ID, Field: "action", Err: fmt.Errorf("%w: %q", ErrInvalidValue, r.Action)}
		}
	}

	for _, fw := range cfg.Compliance.Frameworks {
		if !validFrameworks[fw] {
			return &ValidationError{Component: "compliance", ID: "frameworks", Err: fmt.Errorf("%w: %q", ErrInvalidValue, fw)}
		}
	}
	if cfg.Compliance.Language != "" && !validLanguages[cfg.Compliance.Language] {
		return &ValidationError{Component: "compliance", ID: "language", Err: fmt.Errorf("%w: %q", ErrInvalidValue, cfg.Compliance.Language)}
	}
	if cfg.Compliance.AuditLevel != "" && !validAuditLevels[cfg.Compliance.AuditLevel] {
		return &ValidationError{Component: "compliance", ID: "audit_level", Err: fmt.Errorf("%w: %q", ErrInvalidValue, cfg.Compliance.AuditLevel)}
	}
	if cfg.Compliance.DataResidency != "" && !validResidencies[cfg.Compliance.DataResidency] {
		return &ValidationError{Component: "compliance", ID: "data_residency", Err: fmt.Errorf("%w: %q", ErrInvalidValue, cfg.Compliance.DataResidency)}
	}
	return nil
}

// ToComplianceConfig converts the YAML-shaped ComplianceConfig into the
// typed compliance.Config the compliance package consumes.
func (c ComplianceConfig) ToComplianceConfig() compliance.Config {
	frameworks := make([]compliance.Framework, 0, len(c.Frameworks))
	for _, fw := range c.Frameworks {
		frameworks = append(frameworks, compliance.Framework(fw))
	}
	return compliance.Config{
		Frameworks:    frameworks,
		Language:      compliance.Language(c.Language),
		AuditLevel:    compliance.AuditLevel(c.AuditLevel),
		DataResidency: compliance.DataResidency(c.DataResidency),
	}
}
