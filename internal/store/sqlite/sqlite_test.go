package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/auricle/auricle/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestActivationEndRoundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	start := time.Now().UTC().Truncate(time.Second)

	if err := db.RecordActivation(ctx, 100, "editor", start); err != nil {
		t.Fatalf("activation: %v", err)
	}
	if err := db.RecordEnd(ctx, 100, start.Add(5*time.Second), store.EndDeactivated); err != nil {
		t.Fatalf("end: %v", err)
	}

	sessions, err := db.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.PID != 100 || s.Name != "editor" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if !s.DeactivatedAt.Valid || s.EndReason.String != store.EndDeactivated {
		t.Fatalf("session not closed: %+v", s)
	}
}

func TestRecordEndWithoutOpenSessionIsHarmless(t *testing.T) {
	db := openTestDB(t)
	if err := db.RecordEnd(context.Background(), 999, time.Now(), store.EndTerminated); err != nil {
		t.Fatalf("end without session: %v", err)
	}
}

func TestRecordEndClosesLatestOpenSessionOnly(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	_ = db.RecordActivation(ctx, 100, "editor", base)
	_ = db.RecordEnd(ctx, 100, base.Add(time.Second), store.EndDeactivated)
	_ = db.RecordActivation(ctx, 100, "editor", base.Add(2*time.Second))
	_ = db.RecordEnd(ctx, 100, base.Add(3*time.Second), store.EndTerminated)

	sessions, err := db.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	// newest first
	if sessions[0].EndReason.String != store.EndTerminated || sessions[1].EndReason.String != store.EndDeactivated {
		t.Fatalf("end reasons wrong: %+v", sessions)
	}
}
