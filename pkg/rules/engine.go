package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/codeready-toolchain/governed-agent/internal/ids"
	"github.com/codeready-toolchain/governed-agent/internal/value"
	"github.com/codeready-toolchain/governed-agent/pkg/expr"
)

// ConfigurationError is raised when a Rule fails to load — either its
// condition does not parse, or its action is not one of the closed set.
type ConfigurationError struct {
	RuleID string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rules: rule %q: %v", e.RuleID, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

type compiledRule struct {
	rule      Rule
	predicate *expr.Predicate
	seq       int // insertion order, used as the tie-break
}

// Engine compiles a set of Rules and evaluates Facts against them. After a
// successful Load or Add, Evaluate and DetectConflicts may be called
// concurrently from any number of goroutines without external
// synchronisation: the compiled set is held behind an atomic pointer and
// replaced wholesale, so readers always see a complete, untorn snapshot.
type Engine struct {
	writeMu sync.Mutex // serialises Load/Add against each other
	set     atomic.Pointer[[]compiledRule]
}

// NewEngine returns an empty, ready-to-use Engine.
func NewEngine() *Engine {
	e := &Engine{}
	empty := []compiledRule{}
	e.set.Store(&empty)
	return e
}

// LoadRules validates and compiles every rule's condition, sorts the set by
// Priority ascending (insertion order breaks ties), and atomically replaces
// any previously loaded set. The first invalid rule aborts the load — the
// engine's previously loaded set, if any, is left untouched.
func (e *Engine) LoadRules(rs []Rule) error {
	compiled, err := compileAll(rs)
	if err != nil {
		return err
	}
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.set.Store(&compiled)
	return nil
}

// AddRule compiles a single rule, appends it to the currently loaded set,
// and resorts. On compile failure the currently loaded set is unchanged.
func (e *Engine) AddRule(r Rule) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	current := *e.set.Load()
	next := make([]compiledRule, len(current), len(current)+1)
	copy(next, current)

	cr, err := compileOne(r, len(next))
	if err != nil {
		return err
	}
	next = append(next, cr)
	sortByPriority(next)
	e.set.Store(&next)
	return nil
}

func compileAll(rs []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rs))
	for i, r := range rs {
		cr, err := compileOne(r, i)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cr)
	}
	sortByPriority(compiled)
	return compiled, nil
}

func compileOne(r Rule, seq int) (compiledRule, error) {
	if !validAction(r.Action) {
		return compiledRule{}, &ConfigurationError{RuleID: r.ID, Err: fmt.Errorf("invalid action %q", r.Action)}
	}
	p, err := expr.Compile(r.Condition)
	if err != nil {
		return compiledRule{}, &ConfigurationError{RuleID: r.ID, Err: err}
	}
	return compiledRule{rule: r, predicate: p, seq: seq}, nil
}

func sortByPriority(crs []compiledRule) {
	sort.SliceStable(crs, func(i, j int) bool {
		if crs[i].rule.Priority != crs[j].rule.Priority {
			return crs[i].rule.Priority < crs[j].rule.Priority
		}
		return crs[i].seq < crs[j].seq
	})
}

// Evaluate iterates the loaded rules in priority order and returns a
// Decision for the first whose condition evaluates true against facts. If
// no rule matches, it returns the default REVIEW decision.
func (e *Engine) Evaluate(facts value.Facts) Decision {
	current := *e.set.Load()
	for _, cr := range current {
		if cr.predicate.Eval(facts) {
			return Decision{
				Result:      cr.rule.Action,
				MatchedRule: cr.rule.Clone(),
				Reason:      cr.rule.Reason,
				Score:       cr.rule.ResolvedScore(),
				AuditID:     ids.New(),
			}
		}
	}
	return Decision{
		Result:      Review,
		MatchedRule: nil,
		Reason:      NoMatchReason,
		Score:       50,
		AuditID:     ids.New(),
	}
}

// Conflict describes two rules whose conditions are byte-equal after
// trimming but whose actions differ, or which are exact duplicates.
type Conflict struct {
	RuleA       string
	RuleB       string
	Description string
	Duplicate   bool
}

// DetectConflicts pairwise-compares every loaded rule's trimmed condition
// string. Two rules with the same condition and different actions are
// reported as a conflict; two rules with the same condition and the same
// action are reported as an informational duplicate. This is O(n²), which
// is acceptable at the rule-set scale (hundreds) the engine targets.
func (e *Engine) DetectConflicts() []Conflict {
	current := *e.set.Load()
	var conflicts []Conflict
	for i := 0; i < len(current); i++ {
		for j := i + 1; j < len(current); j++ {
			a, b := current[i].rule, current[j].rule
			if strings.TrimSpace(a.Condition) != strings.TrimSpace(b.Condition) {
				continue
			}
			if a.Action != b.Action {
				conflicts = append(conflicts, Conflict{
					RuleA:       a.ID,
					RuleB:       b.ID,
					Description: fmt.Sprintf("rules %q and %q share condition %q but disagree on action (%s vs %s)", a.ID, b.ID, strings.TrimSpace(a.Condition), a.Action, b.Action),
				})
			} else {
				conflicts = append(conflicts, Conflict{
					RuleA:       a.ID,
					RuleB:       b.ID,
					Description: fmt.Sprintf("rules %q and %q are duplicates (same condition and action)", a.ID, b.ID),
					Duplicate:   true,
				})
			}
		}
	}
	return conflicts
}

// Size returns the number of rules currently loaded.
func (e *Engine) Size() int {
	return len(*e.set.Load())
}

// Rules returns a snapshot copy of the currently loaded rules, in their
// evaluation order.
func (e *Engine) Rules() []Rule {
	current := *e.set.Load()
	out := make([]Rule, len(current))
	for i, cr := range current {
		out[i] = cr.rule
	}
	return out
}
