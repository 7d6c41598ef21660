package events

import (
	"context"
	"time"
)

// Event is the envelope every published event travels in. Type doubles as
// the topic name.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

const (
	// EventSource identifies this service in event envelopes.
	EventSource = "attendance-service"

	// EventVersion is the envelope schema version.
	EventVersion = "1.0"
)

// Event types.
const (
	TypeAbsencesRecorded = "attendance.absences_recorded"
)

// EventPublisher publishes events to the process-local bus.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
