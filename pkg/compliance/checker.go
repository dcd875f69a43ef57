package compliance

import "github.com/codeready-toolchain/governed-agent/pkg/rules"

// Checker is a framework-specific compliance evaluator. It inspects the
// pipeline's input, decision, and audit entry and returns the framework's
// checks in article order. entry is typed any; the NESA checker is the
// only one that type-asserts it (to *audit.Entry / audit.Entry).
type Checker interface {
	Framework() Framework
	Check(input map[string]any, decision rules.Decision, entry any, cfg Config) []Check
}

var registry = map[Framework]Checker{
	PDPL:        pdplChecker{},
	UAEAIEthics: aiEthicsChecker{},
	NESA:        nesaChecker{},
	DubaiAILaw:  dubaiAILawChecker{},
}

// Register installs or overrides the checker used for framework — exposed
// so a caller can wire an ADGM checker, or replace a built-in one, without
// modifying this package.
func Register(framework Framework, checker Checker) {
	registry[framework] = checker
}
