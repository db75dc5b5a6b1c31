package notify

import (
	"fmt"
	"log/slog"
	"sync"
)

// Severity represents the severity level of a notification.
type Severity string

const (
	// SeverityInfo is a neutral status message.
	SeverityInfo Severity = "info"

	// SeveritySuccess reports a completed operation.
	SeveritySuccess Severity = "success"

	// SeverityWarning reports a recoverable problem.
	SeverityWarning Severity = "warning"

	// SeverityError reports a rejected operation or failed run.
	SeverityError Severity = "error"
)

// IsValid returns true if the severity level is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value.
// Returns an error if the string is not a valid severity level.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

// AllSeverities returns all valid severity levels.
func AllSeverities() []Severity {
	return []Severity{SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError}
}

// Notification is a user-facing status message.
type Notification struct {
	// Title is the short headline (e.g., "Pipeline Started").
	Title string `json:"title"`

	// Message is the plain-language detail.
	Message string `json:"message"`

	// Severity classifies the notification for display purposes.
	Severity Severity `json:"severity"`
}

// Sink receives notifications. Implementations must be safe for concurrent
// use and should return quickly; delivery is fire-and-forget.
type Sink interface {
	// Notify delivers a single notification.
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Notify calls the wrapped function.
func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Discard is a Sink that drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// SlogSink forwards notifications to a structured logger, mapping severity
// to the corresponding log level.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a SlogSink. If logger is nil, slog.Default() is used.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

// Notify logs the notification at a level derived from its severity.
func (s *SlogSink) Notify(n Notification) {
	switch n.Severity {
	case SeverityError:
		s.logger.Error(n.Title, "message", n.Message)
	case SeverityWarning:
		s.logger.Warn(n.Title, "message", n.Message)
	default:
		s.logger.Info(n.Title, "message", n.Message, "severity", n.Severity.String())
	}
}

// Buffer is a Sink that records notifications in emission order.
// It is safe for concurrent use and intended for tests and inspection.
type Buffer struct {
	mu            sync.Mutex
	notifications []Notification
}

// Notify appends the notification to the buffer.
func (b *Buffer) Notify(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = append(b.notifications, n)
}

// Notifications returns a copy of the recorded notifications in emission order.
func (b *Buffer) Notifications() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Notification, len(b.notifications))
	copy(out, b.notifications)
	return out
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notifications = nil
}
