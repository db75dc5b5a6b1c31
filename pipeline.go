package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/vibex-ai/pipeline/execute"
	"github.com/vibex-ai/pipeline/graph"
	"github.com/vibex-ai/pipeline/notify"
	"github.com/vibex-ai/pipeline/store"
)

// Workflow ties one pipeline graph to its persistence slots, notification
// sink, and execution sequencer. It is the SDK's main entry point.
//
// Mutation operations delegate to the graph's mutation API; every rejected
// operation additionally emits an error notification describing the failure
// in plain language. A Workflow is not safe for concurrent use.
type Workflow struct {
	graph  *graph.Graph
	slots  *store.Slots
	sink   notify.Sink
	seq    *execute.Sequencer
	runner execute.Runner
	logger *slog.Logger
}

// New creates a workflow with the provided options.
//
// Example:
//
//	w, err := pipeline.New(
//	    pipeline.WithStore(store.NewMemoryStore()),
//	    pipeline.WithRunner(myRunner),
//	    pipeline.WithLogger(logger),
//	)
func New(opts ...Option) (*Workflow, error) {
	cfg := &workflowConfig{
		order: execute.OrderInsertion,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create default logger if not provided
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if cfg.sink == nil {
		cfg.sink = notify.NewSlogSink(cfg.logger)
	}

	if cfg.graph == nil {
		cfg.graph = graph.New()
	}

	if !cfg.order.IsValid() {
		return nil, NewConfigurationError("New", fmt.Errorf("%w: unknown order %q", ErrInvalidConfig, cfg.order))
	}

	w := &Workflow{
		graph:  cfg.graph,
		sink:   cfg.sink,
		runner: cfg.runner,
		logger: cfg.logger,
	}

	if cfg.store != nil {
		w.slots = store.NewSlots(cfg.store)
	}

	if cfg.runner != nil {
		seqOpts := []execute.Option{
			execute.WithNotifier(cfg.sink),
			execute.WithLogger(cfg.logger),
			execute.WithHaltOnError(cfg.haltOnError),
			execute.WithOrder(cfg.order),
		}
		if cfg.tracer != nil {
			seqOpts = append(seqOpts, execute.WithTracer(cfg.tracer))
		}
		w.seq = execute.New(cfg.runner, seqOpts...)
	}

	return w, nil
}

// Graph returns the workflow's graph. The graph is owned by the workflow;
// mutating it directly bypasses failure notifications.
func (w *Workflow) Graph() *graph.Graph {
	return w.graph
}

// AddNode creates an agent node in the workflow's graph.
func (w *Workflow) AddNode(kind graph.AgentKind, label, description string) (*graph.Node, error) {
	n, err := w.graph.AddNode(kind, label, description)
	if err != nil {
		return nil, w.reject("Workflow.AddNode", "Could not add agent", err)
	}
	return n, nil
}

// UpdateNode merges the patch into an existing node.
func (w *Workflow) UpdateNode(id string, patch graph.NodePatch) (*graph.Node, error) {
	n, err := w.graph.UpdateNode(id, patch)
	if err != nil {
		return nil, w.reject("Workflow.UpdateNode", "Could not update agent", err)
	}
	return n, nil
}

// RemoveNode removes a node and every edge referencing it.
func (w *Workflow) RemoveNode(id string) error {
	if err := w.graph.RemoveNode(id); err != nil {
		return w.reject("Workflow.RemoveNode", "Could not remove agent", err)
	}
	return nil
}

// AddEdge creates a typed connection between two existing nodes.
func (w *Workflow) AddEdge(sourceID, targetID, label string, kind graph.DataKind, description string) (*graph.Edge, error) {
	e, err := w.graph.AddEdge(sourceID, targetID, label, kind, description)
	if err != nil {
		return nil, w.reject("Workflow.AddEdge", "Could not connect agents", err)
	}
	return e, nil
}

// UpdateEdge merges the patch into an existing edge.
func (w *Workflow) UpdateEdge(id string, patch graph.EdgePatch) (*graph.Edge, error) {
	e, err := w.graph.UpdateEdge(id, patch)
	if err != nil {
		return nil, w.reject("Workflow.UpdateEdge", "Could not update connection", err)
	}
	return e, nil
}

// RemoveEdge removes an edge.
func (w *Workflow) RemoveEdge(id string) error {
	if err := w.graph.RemoveEdge(id); err != nil {
		return w.reject("Workflow.RemoveEdge", "Could not remove connection", err)
	}
	return nil
}

// Save serializes the graph and writes it to the named slot, overwriting
// any prior value.
func (w *Workflow) Save(ctx context.Context, slot string) error {
	if w.slots == nil {
		return w.reject("Workflow.Save", "Could not save pipeline", ErrNoStore)
	}

	if err := w.slots.Save(ctx, slot, w.graph); err != nil {
		return w.reject("Workflow.Save", "Could not save pipeline", err)
	}

	w.sink.Notify(notify.Notification{
		Title:    "Pipeline Saved",
		Message:  fmt.Sprintf("Saved %d agents to slot %q", w.graph.NodeCount(), slot),
		Severity: notify.SeveritySuccess,
	})
	return nil
}

// Load replaces the workflow's graph with the one stored in the named slot.
//
// On failure the current graph is kept unchanged. A corrupt slot surfaces as
// a KindFormat error wrapping graph.ErrBadSnapshot; callers that want the
// original dashboard's behavior can fall back to an empty graph on it.
func (w *Workflow) Load(ctx context.Context, slot string) error {
	if w.slots == nil {
		return w.reject("Workflow.Load", "Could not load pipeline", ErrNoStore)
	}

	g, err := w.slots.Load(ctx, slot)
	if err != nil {
		return w.reject("Workflow.Load", "Could not load pipeline", err)
	}

	w.graph = g
	w.sink.Notify(notify.Notification{
		Title:    "Pipeline Loaded",
		Message:  fmt.Sprintf("Loaded %d agents from slot %q", g.NodeCount(), slot),
		Severity: notify.SeveritySuccess,
	})
	return nil
}

// Execute runs every node of the workflow's graph once. The graph must not
// be edited while a run is in progress.
func (w *Workflow) Execute(ctx context.Context) (*execute.Result, error) {
	if w.seq == nil {
		return nil, w.reject("Workflow.Execute", "Could not run pipeline", ErrNoRunner)
	}

	result, err := w.seq.Execute(ctx, w.graph)
	if err != nil {
		if result == nil {
			// The run never started (cycle, run already in progress), so the
			// sequencer emitted no notification.
			return nil, w.reject("Workflow.Execute", "Could not run pipeline", err)
		}
		// Cancelled and failed runs were already notified by the sequencer.
		return result, NewExecutionError("Workflow.Execute", err)
	}
	return result, nil
}

// Status returns the current execution status, or execute.StatusIdle if no
// runner is configured.
func (w *Workflow) Status() execute.Status {
	if w.seq == nil {
		return execute.StatusIdle
	}
	return w.seq.Status()
}

// reject emits a failure notification and returns the wrapped error.
func (w *Workflow) reject(op, title string, err error) error {
	w.sink.Notify(notify.Notification{
		Title:    title,
		Message:  err.Error(),
		Severity: notify.SeverityError,
	})
	w.logger.Debug("operation rejected", "op", op, "error", err)

	return classify(err)(op, err)
}

// classify maps sentinel errors to the matching error constructor.
func classify(err error) func(op string, err error) *Error {
	switch {
	case errors.Is(err, graph.ErrNodeNotFound),
		errors.Is(err, graph.ErrEdgeNotFound),
		errors.Is(err, store.ErrSlotNotFound),
		errors.Is(err, store.ErrKeyNotFound):
		return NewNotFoundError
	case errors.Is(err, graph.ErrEmptyLabel),
		errors.Is(err, graph.ErrInvalidKind),
		errors.Is(err, store.ErrInvalidKey),
		errors.Is(err, execute.ErrCycleDetected):
		return NewValidationError
	case errors.Is(err, graph.ErrBadSnapshot):
		return NewFormatError
	case errors.Is(err, store.ErrStorageFailed):
		return NewStorageError
	case errors.Is(err, execute.ErrRunInProgress), errors.Is(err, execute.ErrNilRunner):
		return NewExecutionError
	case errors.Is(err, ErrNoRunner), errors.Is(err, ErrNoStore), errors.Is(err, ErrInvalidConfig):
		return NewConfigurationError
	default:
		return NewInternalError
	}
}
