package store

import (
	"context"
	"database/sql"
	"time"
)

// Session is one contiguous span during which a process owned user focus.
// A session opens on activation and closes on deactivation or termination;
// EndReason records which of the two ended it.

type Session struct {
	ID            int64
	PID           int
	Name          string
	ActivatedAt   time.Time
	DeactivatedAt sql.NullTime
	EndReason     sql.NullString
}

// Store persists focus sessions for later reporting. The agent works without
// one; a nil store simply disables recording.

type Store interface {
	EnsureSchema(ctx context.Context) error
	RecordActivation(ctx context.Context, pid int, name string, at time.Time) error
	// RecordEnd closes the most recent open session for pid. Ending a pid
	// with no open session is not an error (the process may never have
	// resolved to a binding).
	RecordEnd(ctx context.Context, pid int, at time.Time, reason string) error
	RecentSessions(ctx context.Context, limit int) ([]Session, error)
	Close() error
}

// End reasons recorded by the agent.
const (
	EndDeactivated = "deactivated"
	EndTerminated  = "terminated"
)
