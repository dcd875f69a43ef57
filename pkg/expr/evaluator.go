// Package expr implements the restricted predicate language used by rule
// conditions: a self-contained tokenizer and recursive-descent parser, with
// no fallback to host-language dynamic evaluation. Compiled predicates are
// stateless and safe for concurrent reuse.
package expr

import "github.com/codeready-toolchain/governed-agent/internal/value"

// Predicate is a compiled boolean expression. It holds no facts and no
// mutable state, so a single Predicate may be evaluated concurrently from
// any number of goroutines.
type Predicate struct {
	root   node
	source string
}

// Source returns the original condition text the predicate was compiled
// from.
func (p *Predicate) Source() string { return p.source }

// Compile parses expr into a reusable Predicate. Syntax errors are
// returned to the caller immediately (fail fast at load time); they are
// never deferred to evaluation time.
func Compile(source string) (*Predicate, error) {
	parser, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	root, err := parser.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Predicate{root: root, source: source}, nil
}

// Eval runs the compiled predicate against facts. Any runtime failure
// internal to evaluation (missing key, type mismatch) has already resolved
// to a falsy Undefined by the time it reaches here, so Eval itself never
// fails — this wrapper exists only to guard against an evaluator bug
// panicking into caller code.
func (p *Predicate) Eval(facts value.Facts) (result bool) {
	defer func() {
		if recover() != nil {
			result = false
		}
	}()
	return p.root.eval(facts).Truthy()
}

// Evaluate is the convenience one-shot wrapper: it compiles expr and
// evaluates it against facts, swallowing any compile error as false. Use
// Compile+Eval directly when the same expression will be evaluated
// repeatedly, or when a compile error must be reported to the caller.
func Evaluate(source string, facts value.Facts) bool {
	p, err := Compile(source)
	if err != nil {
		return false
	}
	return p.Eval(facts)
}
