package execute

import "fmt"

// Status represents the state of an execution run.
type Status string

const (
	// StatusIdle means no run is in progress.
	StatusIdle Status = "idle"

	// StatusRunning means a run is in progress.
	StatusRunning Status = "running"

	// StatusCompleted means every node was processed successfully.
	StatusCompleted Status = "completed"

	// StatusCancelled means the run observed a cancellation signal between nodes.
	StatusCancelled Status = "cancelled"

	// StatusFailed means a node's runner failed with halt-on-error enabled.
	StatusFailed Status = "failed"
)

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusRunning, StatusCompleted, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status is a terminal run state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status value.
// Returns an error if the string is not a valid status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
