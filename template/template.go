package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vibex-ai/pipeline/graph"
)

// Template represents a pipeline template document.
type Template struct {
	// Name identifies the template (required).
	Name string `yaml:"name"`

	// Description explains what the pipeline does.
	Description string `yaml:"description,omitempty"`

	// Nodes are the agents the template instantiates, in order.
	Nodes []NodeSpec `yaml:"nodes"`

	// Edges describe data flow between nodes, wired by ref.
	Edges []EdgeSpec `yaml:"edges,omitempty"`
}

// NodeSpec describes one agent node in a template.
type NodeSpec struct {
	// Ref is the local key other template entries use to reference this
	// node. Unique within the template, never persisted.
	Ref string `yaml:"ref"`

	// Kind is the agent role (must parse as a graph.AgentKind).
	Kind string `yaml:"kind"`

	// Label is the display name (required).
	Label string `yaml:"label"`

	// Description is free text describing the agent.
	Description string `yaml:"description,omitempty"`

	// Instructions is optional free text for the runner.
	Instructions string `yaml:"instructions,omitempty"`

	// Position is the optional layout coordinate.
	Position *PositionSpec `yaml:"position,omitempty"`
}

// PositionSpec is a 2D layout coordinate in a template.
type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EdgeSpec describes one connection in a template.
type EdgeSpec struct {
	// From and To are node refs within the same template.
	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Label is the display name for the data flowing over this edge.
	Label string `yaml:"label,omitempty"`

	// DataKind classifies the payload (must parse as a graph.DataKind).
	DataKind string `yaml:"data_kind"`

	// Description is free text describing the payload semantics.
	Description string `yaml:"description,omitempty"`
}

// Parse parses template YAML and validates it.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads and parses a template YAML file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the template for structural problems: missing name,
// duplicate or empty refs, invalid kinds, empty labels, and edges whose
// endpoints do not resolve to a node ref.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if len(t.Nodes) == 0 {
		return fmt.Errorf("template %s has no nodes", t.Name)
	}

	refs := make(map[string]bool, len(t.Nodes))
	for i, n := range t.Nodes {
		if n.Ref == "" {
			return fmt.Errorf("node %d: ref is required", i)
		}
		if refs[n.Ref] {
			return fmt.Errorf("duplicate node ref %q", n.Ref)
		}
		refs[n.Ref] = true

		if n.Label == "" {
			return fmt.Errorf("node %q: label is required", n.Ref)
		}
		if _, err := graph.ParseAgentKind(n.Kind); err != nil {
			return fmt.Errorf("node %q: %w", n.Ref, err)
		}
	}

	for i, e := range t.Edges {
		if !refs[e.From] {
			return fmt.Errorf("edge %d: unknown from ref %q", i, e.From)
		}
		if !refs[e.To] {
			return fmt.Errorf("edge %d: unknown to ref %q", i, e.To)
		}
		if _, err := graph.ParseDataKind(e.DataKind); err != nil {
			return fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return nil
}

// Instantiate builds a fresh graph from the template. Every call generates
// new node and edge IDs, so one template can seed many independent graphs.
func (t *Template) Instantiate() (*graph.Graph, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	g := graph.New()
	idByRef := make(map[string]string, len(t.Nodes))

	for _, spec := range t.Nodes {
		kind, err := graph.ParseAgentKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", spec.Ref, err)
		}

		node, err := g.AddNode(kind, spec.Label, spec.Description)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", spec.Ref, err)
		}

		patch := graph.NodePatch{}
		if spec.Instructions != "" {
			patch.Instructions = &spec.Instructions
		}
		if spec.Position != nil {
			patch.Position = &graph.Position{X: spec.Position.X, Y: spec.Position.Y}
		}
		if patch.Instructions != nil || patch.Position != nil {
			if _, err := g.UpdateNode(node.ID, patch); err != nil {
				return nil, fmt.Errorf("node %q: %w", spec.Ref, err)
			}
		}

		idByRef[spec.Ref] = node.ID
	}

	for i, spec := range t.Edges {
		kind, err := graph.ParseDataKind(spec.DataKind)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}

		if _, err := g.AddEdge(idByRef[spec.From], idByRef[spec.To], spec.Label, kind, spec.Description); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return g, nil
}
