package graph

import "fmt"

// Edge represents a directed, typed data-flow connection between two nodes.
//
// Edges are descriptive metadata about intended data flow. The default
// execution order does not consult them; see the execute package for the
// opt-in dependency-ordered walk.
type Edge struct {
	// ID is the unique edge identifier within a graph.
	ID string `json:"id"`

	// SourceID is the producing node's ID.
	SourceID string `json:"sourceId"`

	// TargetID is the consuming node's ID.
	TargetID string `json:"targetId"`

	// Label is the display name for the data flowing over this edge.
	Label string `json:"label"`

	// DataKind classifies the payload. Must be a valid DataKind.
	DataKind DataKind `json:"dataKind"`

	// Description is free text describing the payload semantics.
	Description string `json:"description"`
}

// Validate checks that the edge has all required fields populated.
// Returns an error if either endpoint is empty or DataKind is invalid.
// Self-loops and duplicate edges are not rejected.
func (e *Edge) Validate() error {
	if e.SourceID == "" {
		return fmt.Errorf("edge SourceID cannot be empty")
	}
	if e.TargetID == "" {
		return fmt.Errorf("edge TargetID cannot be empty")
	}
	if !e.DataKind.IsValid() {
		return fmt.Errorf("edge DataKind %q is not a valid data kind", e.DataKind)
	}
	return nil
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}
