package history

import (
	"context"
	"time"
)

// EventType defines the kind of lifecycle event exported to sinks.
type EventType string

const (
	EventResolved    EventType = "resolved"
	EventActivated   EventType = "activated"
	EventDeactivated EventType = "deactivated"
	EventTerminated  EventType = "terminated"
)

// Event represents a lifecycle event to be exported to external systems.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	PID        int       `json:"pid"`
	Name       string    `json:"name"`
}

// Sink is a destination for history events (analytics/statistics systems).
// Implementations must be safe for concurrent use. Send failures are the
// sink's problem; the agent fires and forgets.
type Sink interface {
	Send(ctx context.Context, e Event) error
}
