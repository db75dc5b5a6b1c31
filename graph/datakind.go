package graph

import "fmt"

// DataKind classifies the payload flowing over an edge between two agents.
type DataKind string

const (
	// DataCode is source code or patches.
	DataCode DataKind = "code"

	// DataRequirements is requirements or planning documents.
	DataRequirements DataKind = "requirements"

	// DataTestCases is test plans, test cases, or test results.
	DataTestCases DataKind = "test-cases"

	// DataDocumentation is user or developer documentation.
	DataDocumentation DataKind = "documentation"

	// DataCustom is a user-defined payload outside the built-in set.
	DataCustom DataKind = "custom"
)

// IsValid returns true if the data kind is a recognized value.
func (d DataKind) IsValid() bool {
	switch d {
	case DataCode, DataRequirements, DataTestCases, DataDocumentation, DataCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the data kind.
func (d DataKind) String() string {
	return string(d)
}

// ParseDataKind parses a string into a DataKind value.
// Returns an error if the string is not a valid data kind.
func ParseDataKind(s string) (DataKind, error) {
	kind := DataKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid data kind: %s", s)
	}
	return kind, nil
}

// AllDataKinds returns all valid data kinds.
func AllDataKinds() []DataKind {
	return []DataKind{
		DataCode,
		DataRequirements,
		DataTestCases,
		DataDocumentation,
		DataCustom,
	}
}
