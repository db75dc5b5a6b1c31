package pipeline

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/vibex-ai/pipeline/execute"
	"github.com/vibex-ai/pipeline/graph"
	"github.com/vibex-ai/pipeline/notify"
	"github.com/vibex-ai/pipeline/store"
)

// Option configures a Workflow.
type Option func(*workflowConfig)

// workflowConfig holds configuration for a Workflow instance.
type workflowConfig struct {
	graph       *graph.Graph
	store       store.BlobStore
	sink        notify.Sink
	runner      execute.Runner
	logger      *slog.Logger
	tracer      trace.Tracer
	haltOnError bool
	order       execute.Order
}

// WithGraph seeds the workflow with an existing graph instead of an empty
// one, e.g. a graph instantiated from a template.
func WithGraph(g *graph.Graph) Option {
	return func(c *workflowConfig) {
		c.graph = g
	}
}

// WithStore sets the blob store used for named save slots.
// Without a store, Save and Load return ErrNoStore.
func WithStore(s store.BlobStore) Option {
	return func(c *workflowConfig) {
		c.store = s
	}
}

// WithNotifier sets the notification sink. If not provided, notifications
// are logged through the workflow's logger.
func WithNotifier(sink notify.Sink) Option {
	return func(c *workflowConfig) {
		c.sink = sink
	}
}

// WithRunner sets the runner invoked per node during execution.
// Without a runner, Execute returns ErrNoRunner.
func WithRunner(r execute.Runner) Option {
	return func(c *workflowConfig) {
		c.runner = r
	}
}

// WithLogger sets a custom logger for the workflow.
// If not provided, a default JSON logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *workflowConfig) {
		c.logger = logger
	}
}

// WithTracer sets the tracer for run and node spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *workflowConfig) {
		c.tracer = tracer
	}
}

// WithHaltOnError stops a run at the first failed node instead of
// continuing past it.
func WithHaltOnError(halt bool) Option {
	return func(c *workflowConfig) {
		c.haltOnError = halt
	}
}

// WithOrder selects the execution walk order.
// Defaults to execute.OrderInsertion.
func WithOrder(order execute.Order) Option {
	return func(c *workflowConfig) {
		c.order = order
	}
}
