package graph

import "fmt"

// AgentKind classifies the role an agent node plays in a pipeline.
type AgentKind string

const (
	// KindBusinessAnalyst produces requirements and planning artifacts.
	KindBusinessAnalyst AgentKind = "business-analyst"

	// KindDeveloper implements features and produces code.
	KindDeveloper AgentKind = "developer"

	// KindQAEngineer verifies behavior and produces test artifacts.
	KindQAEngineer AgentKind = "qa-engineer"

	// KindDevOps handles build, deployment, and infrastructure tasks.
	KindDevOps AgentKind = "devops"

	// KindProductManager owns scope and priorities.
	KindProductManager AgentKind = "product-manager"

	// KindCustom is a user-defined role outside the built-in set.
	KindCustom AgentKind = "custom"
)

// IsValid returns true if the agent kind is a recognized value.
func (k AgentKind) IsValid() bool {
	switch k {
	case KindBusinessAnalyst, KindDeveloper, KindQAEngineer,
		KindDevOps, KindProductManager, KindCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the agent kind.
func (k AgentKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the agent kind.
func (k AgentKind) Description() string {
	switch k {
	case KindBusinessAnalyst:
		return "Analyzes requirements and produces planning artifacts"
	case KindDeveloper:
		return "Implements features and produces code"
	case KindQAEngineer:
		return "Verifies behavior and produces test artifacts"
	case KindDevOps:
		return "Handles build, deployment, and infrastructure tasks"
	case KindProductManager:
		return "Owns product scope and priorities"
	case KindCustom:
		return "User-defined agent role"
	default:
		return "Unknown agent kind"
	}
}

// ParseAgentKind parses a string into an AgentKind value.
// Returns an error if the string is not a valid agent kind.
func ParseAgentKind(s string) (AgentKind, error) {
	kind := AgentKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid agent kind: %s", s)
	}
	return kind, nil
}

// AllAgentKinds returns all valid agent kinds.
func AllAgentKinds() []AgentKind {
	return []AgentKind{
		KindBusinessAnalyst,
		KindDeveloper,
		KindQAEngineer,
		KindDevOps,
		KindProductManager,
		KindCustom,
	}
}
