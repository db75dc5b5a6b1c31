package notify

import (
	"log/slog"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	tests := []struct {
		severity Severity
		want     bool
	}{
		{SeverityInfo, true},
		{SeveritySuccess, true},
		{SeverityWarning, true},
		{SeverityError, true},
		{Severity("fatal"), false},
		{Severity(""), false},
	}

	for _, tt := range tests {
		if got := tt.severity.IsValid(); got != tt.want {
			t.Errorf("Severity(%q).IsValid() = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("warning")
	if err != nil {
		t.Fatalf("ParseSeverity(warning) error = %v", err)
	}
	if s != SeverityWarning {
		t.Errorf("ParseSeverity(warning) = %v, want %v", s, SeverityWarning)
	}

	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("ParseSeverity(fatal) error = nil, want error")
	}
}

func TestBuffer_RecordsInOrder(t *testing.T) {
	var b Buffer

	b.Notify(Notification{Title: "first", Severity: SeverityInfo})
	b.Notify(Notification{Title: "second", Severity: SeveritySuccess})
	b.Notify(Notification{Title: "third", Severity: SeverityError})

	got := b.Notifications()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Notifications() len = %d, want %d", len(got), len(want))
	}
	for i, n := range got {
		if n.Title != want[i] {
			t.Errorf("Notifications()[%d].Title = %q, want %q", i, n.Title, want[i])
		}
	}

	b.Reset()
	if len(b.Notifications()) != 0 {
		t.Error("Notifications() after Reset() not empty")
	}
}

func TestBuffer_CopyIsDetached(t *testing.T) {
	var b Buffer
	b.Notify(Notification{Title: "only"})

	got := b.Notifications()
	got[0].Title = "mutated"

	if b.Notifications()[0].Title != "only" {
		t.Error("mutating the returned slice affected the buffer")
	}
}

func TestSinkFunc(t *testing.T) {
	var received Notification
	sink := SinkFunc(func(n Notification) { received = n })

	sink.Notify(Notification{Title: "hello", Message: "world", Severity: SeverityInfo})
	if received.Title != "hello" || received.Message != "world" {
		t.Errorf("SinkFunc received %+v", received)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Notify(Notification{Title: "dropped"})
}

func TestSlogSink(t *testing.T) {
	// Nil logger falls back to the default; all severities must log
	// without panicking.
	sink := NewSlogSink(nil)
	for _, s := range AllSeverities() {
		sink.Notify(Notification{Title: "t", Message: "m", Severity: s})
	}

	sink = NewSlogSink(slog.Default())
	sink.Notify(Notification{Title: "t", Message: "m", Severity: SeverityError})
}
