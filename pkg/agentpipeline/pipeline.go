package agentpipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/codeready-toolchain/governed-agent/internal/ids"
	"github.com/codeready-toolchain/governed-agent/internal/value"
	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/compliance"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

// Result is the outcome of one Run or RunStream call.
type Result struct {
	Output     string
	Decisions  []rules.Decision
	AuditTrail []audit.Entry
	Cancelled  bool
}

// Pipeline composes a rule engine, an audit log, a compliance layer, and an
// LM adapter into the pre-check/think/post-check sequence. A Pipeline value
// has no other state; it is safe to run concurrently from multiple
// goroutines, since Engine.Evaluate is lock-free after load and the audit
// log serialises its own appends.
type Pipeline struct {
	Engine     *rules.Engine
	Log        AuditLog
	Compliance ComplianceLayer
	Adapter    Adapter
}

// New builds a Pipeline from its four collaborators.
func New(engine *rules.Engine, log AuditLog, layer ComplianceLayer, adapter Adapter) *Pipeline {
	return &Pipeline{Engine: engine, Log: log, Compliance: layer, Adapter: adapter}
}

func (p *Pipeline) attachCompliance(decision *rules.Decision, entry *audit.Entry, input map[string]any) {
	report, err := p.Compliance.Evaluate(input, *decision, *entry)
	if err != nil {
		report = compliance.Degenerate(err.Error())
	}
	decision.ComplianceReport = report
	entry.Compliance = report
	p.Log.AttachCompliance(entry.ID, report)
}

func cancelledDecision() rules.Decision {
	return rules.Decision{
		Result:  rules.Review,
		Reason:  "cancelled",
		Score:   50,
		AuditID: ids.New(),
	}
}

// Run executes the pre-check/think/post-check sequence once. If the
// pre-check yields REJECTED, the LM is never called. If ctx is already
// cancelled after the pre-check append, Run returns a synthetic REVIEW
// post-decision annotated "cancelled" without calling the adapter — the
// pre-check entry, already persisted, is unaffected.
func (p *Pipeline) Run(ctx context.Context, facts value.Facts) (Result, error) {
	preDecision := p.Engine.Evaluate(facts)
	preEntry, _ := p.Log.Append(preDecision, facts.ToMap())
	p.attachCompliance(&preDecision, &preEntry, facts.ToMap())

	if preDecision.Result == rules.Rejected {
		return Result{
			Output:     "Blocked by rule: " + preDecision.Reason,
			Decisions:  []rules.Decision{preDecision},
			AuditTrail: []audit.Entry{preEntry},
		}, nil
	}

	select {
	case <-ctx.Done():
		return Result{
			Decisions:  []rules.Decision{preDecision, cancelledDecision()},
			AuditTrail: []audit.Entry{preEntry},
			Cancelled:  true,
		}, nil
	default:
	}

	output, err := p.Adapter.Think(ctx, facts)
	if err != nil {
		return Result{}, fmt.Errorf("agentpipeline: lm call failed: %w", err)
	}

	postFacts := facts.With("llmOutput", value.String(output))
	postDecision := p.Engine.Evaluate(postFacts)
	postEntry, _ := p.Log.Append(postDecision, postFacts.ToMap())
	p.attachCompliance(&postDecision, &postEntry, postFacts.ToMap())

	return Result{
		Output:     output,
		Decisions:  []rules.Decision{preDecision, postDecision},
		AuditTrail: []audit.Entry{preEntry, postEntry},
	}, nil
}

// RunStream is Run's chunked variant. onChunk is invoked serially, in a
// prefix-stable order, as an extension of the caller's goroutine; onDone is
// invoked exactly once, after the last onChunk call returns, on every path
// that returns nil. When the LM call fails, RunStream returns the error and
// does not invoke onDone. If the
// adapter implements StreamingAdapter, its CompleteStream is used;
// otherwise Think's result is tokenised on whitespace and each token is
// delivered with a trailing space, simulating streaming without changing
// order or content.
func (p *Pipeline) RunStream(ctx context.Context, facts value.Facts, onChunk func(string), onDone func(Result)) error {
	preDecision := p.Engine.Evaluate(facts)
	preEntry, _ := p.Log.Append(preDecision, facts.ToMap())
	p.attachCompliance(&preDecision, &preEntry, facts.ToMap())

	if preDecision.Result == rules.Rejected {
		msg := "Blocked by rule: " + preDecision.Reason
		onChunk(msg)
		onDone(Result{
			Output:     msg,
			Decisions:  []rules.Decision{preDecision},
			AuditTrail: []audit.Entry{preEntry},
		})
		return nil
	}

	select {
	case <-ctx.Done():
		onDone(Result{
			Decisions:  []rules.Decision{preDecision, cancelledDecision()},
			AuditTrail: []audit.Entry{preEntry},
			Cancelled:  true,
		})
		return nil
	default:
	}

	var accumulated strings.Builder
	cancelled := false

	emit := func(chunk string) bool {
		if cancelled {
			return false
		}
		select {
		case <-ctx.Done():
			cancelled = true
			return false
		default:
		}
		accumulated.WriteString(chunk)
		onChunk(chunk)
		return true
	}

	if streaming, ok := p.Adapter.(StreamingAdapter); ok {
		_, err := streaming.CompleteStream(ctx, facts, func(chunk string) { emit(chunk) })
		if err != nil && !cancelled {
			return fmt.Errorf("agentpipeline: lm stream failed: %w", err)
		}
	} else {
		output, err := p.Adapter.Think(ctx, facts)
		if err != nil {
			return fmt.Errorf("agentpipeline: lm call failed: %w", err)
		}
		for _, token := range strings.Fields(output) {
			if !emit(token + " ") {
				break
			}
		}
	}

	output := accumulated.String()
	postFacts := facts.With("llmOutput", value.String(output))
	postDecision := p.Engine.Evaluate(postFacts)
	postEntry, _ := p.Log.Append(postDecision, postFacts.ToMap())
	p.attachCompliance(&postDecision, &postEntry, postFacts.ToMap())

	onDone(Result{
		Output:     output,
		Decisions:  []rules.Decision{preDecision, postDecision},
		AuditTrail: []audit.Entry{preEntry, postEntry},
		Cancelled:  cancelled,
	})
	return nil
}
