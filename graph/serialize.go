package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrBadSnapshot indicates that a serialized graph is not well-formed JSON
// matching the snapshot schema, or violates a graph invariant (duplicate
// IDs, dangling edge endpoints, unknown kinds).
var ErrBadSnapshot = errors.New("graph: malformed snapshot")

// snapshot is the wire shape of a serialized graph.
type snapshot struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// Serialize produces a JSON snapshot of the graph sufficient for exact
// round-trip reconstruction via Deserialize. Node and edge order is
// preserved.
func (g *Graph) Serialize() ([]byte, error) {
	snap := snapshot{
		Nodes: make([]*Node, 0, len(g.nodes)),
		Edges: make([]*Edge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		snap.Nodes = append(snap.Nodes, n.Clone())
	}
	for _, e := range g.edges {
		snap.Edges = append(snap.Edges, e.Clone())
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("graph: serialize: %w", err)
	}
	return data, nil
}

// Deserialize reconstructs a graph from a snapshot produced by Serialize.
//
// Returns ErrBadSnapshot if the blob is not well-formed JSON matching the
// snapshot schema or if it violates a graph invariant. On error no partial
// graph is returned.
func Deserialize(data []byte) (*Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var snap *snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	// A JSON null decodes without error but carries no snapshot.
	if snap == nil {
		return nil, fmt.Errorf("%w: not a snapshot object", ErrBadSnapshot)
	}
	// The blob must hold exactly one JSON value.
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after snapshot", ErrBadSnapshot)
	}

	g := New()
	for _, n := range snap.Nodes {
		if n == nil || n.ID == "" {
			return nil, fmt.Errorf("%w: node with empty id", ErrBadSnapshot)
		}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("%w: node %s: %v", ErrBadSnapshot, n.ID, err)
		}
		if _, exists := g.nodeIndex[n.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate node id %s", ErrBadSnapshot, n.ID)
		}
		clone := n.Clone()
		g.nodes = append(g.nodes, clone)
		g.nodeIndex[clone.ID] = clone
	}

	for _, e := range snap.Edges {
		if e == nil || e.ID == "" {
			return nil, fmt.Errorf("%w: edge with empty id", ErrBadSnapshot)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: edge %s: %v", ErrBadSnapshot, e.ID, err)
		}
		if _, exists := g.edgeIndex[e.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate edge id %s", ErrBadSnapshot, e.ID)
		}
		if _, ok := g.nodeIndex[e.SourceID]; !ok {
			return nil, fmt.Errorf("%w: edge %s references missing source %s", ErrBadSnapshot, e.ID, e.SourceID)
		}
		if _, ok := g.nodeIndex[e.TargetID]; !ok {
			return nil, fmt.Errorf("%w: edge %s references missing target %s", ErrBadSnapshot, e.ID, e.TargetID)
		}
		clone := e.Clone()
		g.edges = append(g.edges, clone)
		g.edgeIndex[clone.ID] = clone
	}

	return g, nil
}

// Equal reports whether two graphs are structurally equal: same nodes and
// edges, field for field, in the same order.
func Equal(a, b *Graph) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.nodes) != len(b.nodes) || len(a.edges) != len(b.edges) {
		return false
	}
	for i, n := range a.nodes {
		if *n != *b.nodes[i] {
			return false
		}
	}
	for i, e := range a.edges {
		if *e != *b.edges[i] {
			return false
		}
	}
	return true
}
