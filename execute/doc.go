// Package execute runs every node of a pipeline graph exactly once,
// reporting progress through the notification port as it goes.
//
// The Sequencer walks nodes strictly sequentially. The default walk order is
// node insertion order, matching the original dashboard's behavior; edges
// are descriptive metadata and do not gate execution. Dependency-driven
// ordering (a topological sort over the declared edges) is available as an
// explicit opt-in via WithOrder(OrderDependency) and fails on cyclic graphs.
//
// The actual unit of work per node is delegated to a Runner, an external
// collaborator that may call an LLM service, execute a script, or stub the
// work entirely:
//
//	seq := execute.New(execute.RunnerFunc(func(ctx context.Context, n *graph.Node) error {
//	    return callAgentService(ctx, n)
//	}), execute.WithNotifier(sink))
//
//	result, err := seq.Execute(ctx, g)
//
// A run terminates in one of three states: Completed (every node processed),
// Cancelled (the context was cancelled between nodes), or Failed (a runner
// error with halt-on-error enabled). Partial per-node completion state
// remains observable on the returned Result in every case.
package execute
