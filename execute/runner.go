package execute

import (
	"context"

	"github.com/vibex-ai/pipeline/graph"
)

// Runner performs the actual unit of work for a single node. The sequencer
// treats it as opaque: any non-nil error counts as a failed node, and the
// halt-on-error policy decides whether the run continues.
//
// Implementations must respect context cancellation; the sequencer passes
// its run context through unchanged.
type Runner interface {
	// Run executes the work the node describes. The node's Instructions
	// field carries runner-specific directives; the sequencer never
	// interprets it.
	Run(ctx context.Context, node *graph.Node) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, node *graph.Node) error

// Run calls the wrapped function.
func (f RunnerFunc) Run(ctx context.Context, node *graph.Node) error {
	return f(ctx, node)
}
