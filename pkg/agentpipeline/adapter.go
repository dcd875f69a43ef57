// Package agentpipeline composes a rule engine, an audit log, and a
// compliance layer around a single language-model call, producing a
// decision trail for every invocation.
package agentpipeline

import (
	"context"

	"github.com/codeready-toolchain/governed-agent/internal/value"
)

// Adapter is the minimal capability a concrete pipeline must provide: a
// single-shot call to the underlying language model. Modelling this as an
// interface rather than a base class to subclass keeps the pipeline a
// plain value that composes behaviour instead of inheriting it.
type Adapter interface {
	Think(ctx context.Context, facts value.Facts) (string, error)
}

// StreamingAdapter is the optional chunked variant. When an Adapter also
// implements StreamingAdapter, RunStream delegates to CompleteStream
// instead of simulating streaming by tokenising Think's output.
type StreamingAdapter interface {
	Adapter
	CompleteStream(ctx context.Context, facts value.Facts, onChunk func(string)) (string, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, facts value.Facts) (string, error)

func (f AdapterFunc) Think(ctx context.Context, facts value.Facts) (string, error) {
	return f(ctx, facts)
}
