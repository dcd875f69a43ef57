// Package config loads and validates the YAML configuration consumed by
// the governed-agent CLI and pipeline: the rule set, the compliance
// framework selection, and the audit journal location.
package config

import "github.com/codeready-toolchain/governed-agent/pkg/rules"

// Config is the umbrella object returned by Load.
type Config struct {
	// AuditPath is the journal file location. Defaults to
	// ./data/audit.jsonl; Load replaces it with AUDIT_PATH whenever that
	// variable is set, even over a value given in the YAML file.
	AuditPath  string           `yaml:"audit_path"`
	Rules      []rules.Rule     `yaml:"rules"`
	Compliance ComplianceConfig `yaml:"compliance"`
}

// ComplianceConfig mirrors pkg/compliance.Config but with plain strings,
// since that is what YAML naturally decodes into; ToComplianceConfig
// converts it to the typed enums the compliance package expects.
type ComplianceConfig struct {
	Frameworks    []string `yaml:"frameworks"`
	Language      string   `yaml:"language"`
	AuditLevel    string   `yaml:"audit_level"`
	DataResidency string   `yaml:"data_residency"`
}
