package execute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vibex-ai/pipeline/graph"
	"github.com/vibex-ai/pipeline/notify"
)

const instrumentationName = "github.com/vibex-ai/pipeline/execute"

// Sentinel errors for sequencer operations.
var (
	// ErrNilRunner indicates the sequencer was created without a runner.
	ErrNilRunner = errors.New("execute: runner is required")

	// ErrRunInProgress indicates Execute was called while another run on the
	// same sequencer had not yet reached a terminal state.
	ErrRunInProgress = errors.New("execute: run already in progress")
)

// NodeState is the per-node completion record for one run.
type NodeState struct {
	// NodeID identifies the node.
	NodeID string `json:"nodeId"`

	// Completed is true once the runner finished the node successfully.
	Completed bool `json:"completed"`

	// Err holds the runner's error for this node, if any.
	Err error `json:"-"`
}

// Result is the outcome of a single run.
type Result struct {
	// Status is the terminal state the run reached.
	Status Status

	// States holds one entry per node in graph insertion order, regardless
	// of the walk order used. Nodes never attempted have Completed=false
	// and a nil Err.
	States []NodeState

	// Attempted is the number of nodes whose runner was invoked.
	Attempted int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Completed returns true if every node's state is completed.
func (r *Result) Completed() bool {
	for _, s := range r.States {
		if !s.Completed {
			return false
		}
	}
	return true
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithNotifier sets the notification sink progress messages are emitted to.
// Defaults to notify.Discard.
func WithNotifier(sink notify.Sink) Option {
	return func(s *Sequencer) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer sets the tracer used for run and node spans.
// Defaults to a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Sequencer) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMeterProvider sets the meter provider used for run metrics.
// Defaults to the global otel meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Sequencer) {
		if mp != nil {
			s.meter = mp.Meter(instrumentationName)
		}
	}
}

// WithHaltOnError stops the run at the first node whose runner fails,
// terminating in StatusFailed. When disabled (the default), a failed node is
// recorded as not completed and the run continues to the next node.
func WithHaltOnError(halt bool) Option {
	return func(s *Sequencer) {
		s.haltOnError = halt
	}
}

// WithOrder selects the node walk order. Defaults to OrderInsertion.
func WithOrder(order Order) Option {
	return func(s *Sequencer) {
		if order.IsValid() {
			s.order = order
		}
	}
}

// Sequencer runs every node of a graph exactly once, sequentially, in a
// deterministic order. A sequencer may be reused across runs but supports
// only one run at a time.
type Sequencer struct {
	runner      Runner
	sink        notify.Sink
	logger      *slog.Logger
	tracer      trace.Tracer
	meter       metric.Meter
	haltOnError bool
	order       Order

	mu     sync.Mutex
	status Status

	nodesRun    metric.Int64Counter
	nodesFailed metric.Int64Counter
	runs        metric.Int64Counter
}

// New creates a sequencer that delegates per-node work to runner.
func New(runner Runner, opts ...Option) *Sequencer {
	s := &Sequencer{
		runner: runner,
		sink:   notify.Discard,
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
		order:  OrderInsertion,
		status: StatusIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.initInstruments()
	return s
}

func (s *Sequencer) initInstruments() {
	var err error
	if s.nodesRun, err = s.meter.Int64Counter("pipeline.nodes.run",
		metric.WithDescription("Number of nodes whose runner was invoked")); err != nil {
		s.logger.Warn("failed to create counter", "name", "pipeline.nodes.run", "error", err)
	}
	if s.nodesFailed, err = s.meter.Int64Counter("pipeline.nodes.failed",
		metric.WithDescription("Number of nodes whose runner returned an error")); err != nil {
		s.logger.Warn("failed to create counter", "name", "pipeline.nodes.failed", "error", err)
	}
	if s.runs, err = s.meter.Int64Counter("pipeline.runs",
		metric.WithDescription("Number of pipeline runs by terminal status")); err != nil {
		s.logger.Warn("failed to create counter", "name", "pipeline.runs", "error", err)
	}
}

// Status returns the sequencer's current run status. Between runs it reports
// the terminal status of the most recent run, or StatusIdle if none has
// started yet.
func (s *Sequencer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Sequencer) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *Sequencer) tryStart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRunning {
		return ErrRunInProgress
	}
	s.status = StatusRunning
	return nil
}

// Execute runs every node of the graph once, in the configured order.
//
// The result is non-nil whenever the run started, including cancelled and
// failed runs, so partial per-node state stays observable. The error is
// non-nil when the run could not start, was cancelled (the context error),
// or terminated in StatusFailed (the failing node's runner error).
//
// The graph must not be mutated while Execute is in progress; the sequencer
// reads the graph but never writes to it.
func (s *Sequencer) Execute(ctx context.Context, g *graph.Graph) (*Result, error) {
	if s.runner == nil {
		return nil, ErrNilRunner
	}

	ordered := g.Nodes()
	if s.order == OrderDependency {
		var err error
		if ordered, err = dependencyOrder(g); err != nil {
			return nil, err
		}
	}

	if err := s.tryStart(); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	result := &Result{
		Status: StatusRunning,
		States: make([]NodeState, len(nodes)),
	}
	stateIndex := make(map[string]int, len(nodes))
	for i, n := range nodes {
		result.States[i] = NodeState{NodeID: n.ID}
		stateIndex[n.ID] = i
	}

	start := time.Now()
	ctx, runSpan := s.tracer.Start(ctx, "pipeline.execute",
		trace.WithAttributes(
			attribute.Int("pipeline.node_count", len(nodes)),
			attribute.String("pipeline.order", s.order.String()),
		))
	defer runSpan.End()

	s.logger.Info("pipeline run started", "nodes", len(nodes), "order", s.order.String())

	for _, node := range ordered {
		if err := ctx.Err(); err != nil {
			s.finish(runSpan, result, StatusCancelled, start)
			s.sink.Notify(notify.Notification{
				Title:    "Pipeline Cancelled",
				Message:  fmt.Sprintf("Run cancelled after %d of %d agents", result.Attempted, len(nodes)),
				Severity: notify.SeverityWarning,
			})
			return result, err
		}

		err := s.runNode(ctx, node)
		result.Attempted++

		idx := stateIndex[node.ID]
		if err != nil {
			result.States[idx].Err = err

			if s.haltOnError {
				failure := fmt.Errorf("node %s (%s): %w", node.ID, node.Label, err)
				s.finish(runSpan, result, StatusFailed, start)
				runSpan.RecordError(failure)
				runSpan.SetStatus(codes.Error, failure.Error())
				s.sink.Notify(notify.Notification{
					Title:    "Pipeline Failed",
					Message:  fmt.Sprintf("Agent %q failed: %v", node.Label, err),
					Severity: notify.SeverityError,
				})
				return result, failure
			}

			// Halt-on-error disabled: the node stays not-completed and the
			// run continues. The failure is notified, not re-raised.
			s.logger.Warn("agent failed, continuing", "node_id", node.ID, "label", node.Label, "error", err)
			continue
		}

		result.States[idx].Completed = true
	}

	s.finish(runSpan, result, StatusCompleted, start)
	s.sink.Notify(notify.Notification{
		Title:    "Pipeline Completed",
		Message:  fmt.Sprintf("All %d agents finished", len(nodes)),
		Severity: notify.SeveritySuccess,
	})
	s.logger.Info("pipeline run completed", "nodes", len(nodes), "duration", result.Duration)

	// Failures under halt-on-error=false are reflected in the node states
	// and notifications only, never re-raised.
	return result, nil
}

// runNode invokes the runner for one node, bracketed by started/completed
// notifications and a node span.
func (s *Sequencer) runNode(ctx context.Context, node *graph.Node) error {
	ctx, span := s.tracer.Start(ctx, "pipeline.node",
		trace.WithAttributes(
			attribute.String("node.id", node.ID),
			attribute.String("node.kind", node.Kind.String()),
			attribute.String("node.label", node.Label),
		))
	defer span.End()

	s.sink.Notify(notify.Notification{
		Title:    "Agent Started",
		Message:  fmt.Sprintf("%s (%s) is running", node.Label, node.Kind),
		Severity: notify.SeverityInfo,
	})
	s.logger.Debug("agent started", "node_id", node.ID, "kind", node.Kind.String(), "label", node.Label)

	s.add(ctx, s.nodesRun, 1, attribute.String("node.kind", node.Kind.String()))

	if err := s.runner.Run(ctx, node); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.add(ctx, s.nodesFailed, 1, attribute.String("node.kind", node.Kind.String()))
		s.sink.Notify(notify.Notification{
			Title:    "Agent Failed",
			Message:  fmt.Sprintf("%s failed: %v", node.Label, err),
			Severity: notify.SeverityError,
		})
		return err
	}

	s.sink.Notify(notify.Notification{
		Title:    "Agent Completed",
		Message:  fmt.Sprintf("%s finished", node.Label),
		Severity: notify.SeveritySuccess,
	})
	return nil
}

func (s *Sequencer) finish(span trace.Span, result *Result, status Status, start time.Time) {
	result.Status = status
	result.Duration = time.Since(start)
	s.setStatus(status)
	span.SetAttributes(attribute.String("pipeline.status", status.String()))
	s.add(context.Background(), s.runs, 1, attribute.String("pipeline.status", status.String()))
}

func (s *Sequencer) add(ctx context.Context, counter metric.Int64Counter, v int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, v, metric.WithAttributes(attrs...))
}
