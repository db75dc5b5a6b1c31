package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for graph mutation operations.
var (
	// ErrNodeNotFound indicates the referenced node does not exist in the graph.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeNotFound indicates the referenced edge does not exist in the graph.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrEmptyLabel indicates a node was created or patched with an empty label.
	ErrEmptyLabel = errors.New("graph: node label cannot be empty")

	// ErrInvalidKind indicates an unrecognized agent kind or data kind.
	ErrInvalidKind = errors.New("graph: invalid kind")
)

// Graph is an ordered collection of agent nodes plus the typed data
// connections between them. Node insertion order is preserved and defines
// the default execution order.
//
// All mutation goes through the Graph methods, which maintain two
// invariants: node and edge IDs are unique within the graph, and every edge
// references two existing nodes (removing a node cascades to its edges).
//
// A Graph is not safe for concurrent use. Callers sharing a graph across
// goroutines must serialize access; in particular a graph must not be edited
// while a run over it is in progress.
type Graph struct {
	nodes []*Node
	edges []*Edge

	nodeIndex map[string]*Node
	edgeIndex map[string]*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodeIndex: make(map[string]*Node),
		edgeIndex: make(map[string]*Edge),
	}
}

// AddNode creates a node with a fresh unique ID and appends it to the graph.
// The returned node is the stored instance; further field changes should go
// through UpdateNode.
//
// Returns ErrEmptyLabel if label is empty and ErrInvalidKind if kind is not
// a recognized agent kind. On error the graph is unchanged.
func (g *Graph) AddNode(kind AgentKind, label, description string) (*Node, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: agent kind %q", ErrInvalidKind, kind)
	}

	n := &Node{
		ID:          uuid.NewString(),
		Kind:        kind,
		Label:       label,
		Description: description,
	}

	g.nodes = append(g.nodes, n)
	g.nodeIndex[n.ID] = n
	return n, nil
}

// NodePatch describes a partial update to a node. Nil fields are left
// unchanged. The node ID cannot be patched.
type NodePatch struct {
	Kind         *AgentKind
	Label        *string
	Description  *string
	Instructions *string
	Position     *Position
}

// UpdateNode merges the patch into the node with the given ID and returns
// the updated node.
//
// Returns ErrNodeNotFound if the ID is absent, ErrEmptyLabel if the patch
// sets an empty label, and ErrInvalidKind if the patch sets an unrecognized
// kind. On error the node is unchanged.
func (g *Graph) UpdateNode(id string, patch NodePatch) (*Node, error) {
	n, ok := g.nodeIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	if patch.Label != nil && *patch.Label == "" {
		return nil, ErrEmptyLabel
	}
	if patch.Kind != nil && !patch.Kind.IsValid() {
		return nil, fmt.Errorf("%w: agent kind %q", ErrInvalidKind, *patch.Kind)
	}

	if patch.Kind != nil {
		n.Kind = *patch.Kind
	}
	if patch.Label != nil {
		n.Label = *patch.Label
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Instructions != nil {
		n.Instructions = *patch.Instructions
	}
	if patch.Position != nil {
		n.Position = *patch.Position
	}
	return n, nil
}

// RemoveNode removes the node with the given ID and every edge that
// references it as source or target.
//
// Returns ErrNodeNotFound if the ID is absent.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodeIndex[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	delete(g.nodeIndex, id)
	for i, n := range g.nodes {
		if n.ID == id {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}

	// Cascade: drop edges referencing the removed node.
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.SourceID == id || e.TargetID == id {
			delete(g.edgeIndex, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	return nil
}

// AddEdge creates an edge with a fresh unique ID connecting two existing
// nodes and appends it to the graph.
//
// Returns ErrNodeNotFound if either endpoint does not exist and
// ErrInvalidKind if kind is not a recognized data kind. Self-loops and
// duplicate edges between the same pair of nodes are permitted. On error
// the graph is unchanged.
func (g *Graph) AddEdge(sourceID, targetID, label string, kind DataKind, description string) (*Edge, error) {
	if _, ok := g.nodeIndex[sourceID]; !ok {
		return nil, fmt.Errorf("%w: source %s", ErrNodeNotFound, sourceID)
	}
	if _, ok := g.nodeIndex[targetID]; !ok {
		return nil, fmt.Errorf("%w: target %s", ErrNodeNotFound, targetID)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: data kind %q", ErrInvalidKind, kind)
	}

	e := &Edge{
		ID:          uuid.NewString(),
		SourceID:    sourceID,
		TargetID:    targetID,
		Label:       label,
		DataKind:    kind,
		Description: description,
	}

	g.edges = append(g.edges, e)
	g.edgeIndex[e.ID] = e
	return e, nil
}

// EdgePatch describes a partial update to an edge. Nil fields are left
// unchanged. The edge ID and endpoints cannot be patched; remove and re-add
// the edge to rewire it.
type EdgePatch struct {
	Label       *string
	DataKind    *DataKind
	Description *string
}

// UpdateEdge merges the patch into the edge with the given ID and returns
// the updated edge.
//
// Returns ErrEdgeNotFound if the ID is absent and ErrInvalidKind if the
// patch sets an unrecognized data kind.
func (g *Graph) UpdateEdge(id string, patch EdgePatch) (*Edge, error) {
	e, ok := g.edgeIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
	}

	if patch.DataKind != nil && !patch.DataKind.IsValid() {
		return nil, fmt.Errorf("%w: data kind %q", ErrInvalidKind, *patch.DataKind)
	}

	if patch.Label != nil {
		e.Label = *patch.Label
	}
	if patch.DataKind != nil {
		e.DataKind = *patch.DataKind
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	return e, nil
}

// RemoveEdge removes the edge with the given ID.
//
// Returns ErrEdgeNotFound if the ID is absent.
func (g *Graph) RemoveEdge(id string) error {
	if _, ok := g.edgeIndex[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
	}

	delete(g.edgeIndex, id)
	for i, e := range g.edges {
		if e.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	return nil
}

// Node returns the node with the given ID.
// Returns ErrNodeNotFound if the ID is absent.
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodeIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

// Edge returns the edge with the given ID.
// Returns ErrEdgeNotFound if the ID is absent.
func (g *Graph) Edge(id string) (*Edge, error) {
	e, ok := g.edgeIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
	}
	return e, nil
}

// Nodes returns the nodes in insertion order. The slice is a copy; the
// elements are the stored instances.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the edges in insertion order. The slice is a copy; the
// elements are the stored instances.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
