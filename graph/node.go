package graph

import "errors"

// Position is a 2D layout coordinate for a node.
// It is used only for canvas layout and has no effect on execution.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents an agent in the pipeline graph.
type Node struct {
	// ID is the unique node identifier within a graph.
	// Assigned at creation and immutable afterwards.
	ID string `json:"id"`

	// Kind is the agent role category. Must be a valid AgentKind.
	Kind AgentKind `json:"kind"`

	// Label is the display name. Required, free text.
	Label string `json:"label"`

	// Description is free text describing what the agent does.
	Description string `json:"description"`

	// Instructions is optional free text consumed only by the runner.
	Instructions string `json:"instructions,omitempty"`

	// Position is the layout coordinate of the node.
	Position Position `json:"position"`
}

// WithInstructions sets the runner instructions and returns the node for
// method chaining.
func (n *Node) WithInstructions(instructions string) *Node {
	n.Instructions = instructions
	return n
}

// WithPosition sets the layout position and returns the node for method chaining.
func (n *Node) WithPosition(x, y float64) *Node {
	n.Position = Position{X: x, Y: y}
	return n
}

// Validate checks that the node has all required fields set correctly.
// Returns an error if Label is empty or Kind is not a valid agent kind.
func (n *Node) Validate() error {
	if n.Label == "" {
		return errors.New("node label is required")
	}
	if !n.Kind.IsValid() {
		return errors.New("node kind is not a valid agent kind")
	}
	return nil
}

// Clone returns a copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}
