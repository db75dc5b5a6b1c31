package execute

import (
	"errors"
	"fmt"

	"github.com/vibex-ai/pipeline/graph"
)

// ErrCycleDetected is returned when dependency ordering is requested on a
// graph whose edges form a cycle.
var ErrCycleDetected = errors.New("execute: cycle detected, graph is not acyclic")

// Order selects how the sequencer derives the node walk order.
type Order string

const (
	// OrderInsertion walks nodes in graph insertion order, ignoring edges.
	// This matches the original dashboard's behavior and is the default.
	OrderInsertion Order = "insertion"

	// OrderDependency walks nodes in a topological order derived from the
	// declared edges, so every node starts after all of its declared
	// producers have finished. Requires an acyclic graph. This changes the
	// observable completion order relative to insertion-order runs.
	OrderDependency Order = "dependency"
)

// IsValid returns true if the order is a recognized value.
func (o Order) IsValid() bool {
	switch o {
	case OrderInsertion, OrderDependency:
		return true
	default:
		return false
	}
}

// String returns the string representation of the order.
func (o Order) String() string {
	return string(o)
}

// dependencyOrder computes a topological order over the graph's nodes using
// Kahn's algorithm. Ties are broken by insertion order, so graphs without
// edges walk identically to OrderInsertion. Self-loops make a node its own
// predecessor and are reported as cycles.
func dependencyOrder(g *graph.Graph) ([]*graph.Node, error) {
	nodes := g.Nodes()

	indegree := make(map[string]int, len(nodes))
	successors := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		indegree[n.ID] = 0
	}
	for _, e := range g.Edges() {
		successors[e.SourceID] = append(successors[e.SourceID], e.TargetID)
		indegree[e.TargetID]++
	}

	ordered := make([]*graph.Node, 0, len(nodes))
	scheduled := make(map[string]bool, len(nodes))

	for len(ordered) < len(nodes) {
		// Earliest-inserted node with no unsatisfied predecessors.
		var next *graph.Node
		for _, n := range nodes {
			if !scheduled[n.ID] && indegree[n.ID] == 0 {
				next = n
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %d of %d nodes unreachable", ErrCycleDetected, len(nodes)-len(ordered), len(nodes))
		}

		scheduled[next.ID] = true
		ordered = append(ordered, next)
		for _, succ := range successors[next.ID] {
			indegree[succ]--
		}
	}

	return ordered, nil
}
