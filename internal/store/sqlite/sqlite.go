package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/auricle/auricle/internal/store"
)

// DB implements store.Store for SQLite (modernc.org/sqlite driver, CGO-free).
// Path is a filesystem path to the SQLite database file. Use ":memory:" for in-memory.

type DB struct {
	db *sql.DB
}

// New opens a SQLite database at path.
func New(path string) (*DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty sqlite path")
	}
	d, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// busy timeout helps with short concurrent locks
	_, _ = d.Exec("PRAGMA busy_timeout=3000;")
	return &DB{db: d}, nil
}

func (s *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS focus_session(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pid INTEGER NOT NULL,
			name TEXT NOT NULL,
			activated_at TIMESTAMP NOT NULL,
			deactivated_at TIMESTAMP NULL,
			end_reason TEXT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_focus_session_pid ON focus_session(pid);`,
		`CREATE INDEX IF NOT EXISTS idx_focus_session_open ON focus_session(deactivated_at);`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error { return s.db.Close() }

func (s *DB) RecordActivation(ctx context.Context, pid int, name string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO focus_session(pid, name, activated_at, deactivated_at, end_reason)
		VALUES(?, ?, ?, NULL, NULL);`,
		pid, name, at.UTC())
	return err
}

func (s *DB) RecordEnd(ctx context.Context, pid int, at time.Time, reason string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE focus_session
		SET deactivated_at=?, end_reason=?
		WHERE id = (
			SELECT id FROM focus_session
			WHERE pid=? AND deactivated_at IS NULL
			ORDER BY activated_at DESC LIMIT 1
		);`,
		at.UTC(), reason, pid)
	return err
}

func (s *DB) RecentSessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pid, name, activated_at, deactivated_at, end_reason
		FROM focus_session
		ORDER BY activated_at DESC
		LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make([]store.Session, 0)
	for rows.Next() {
		var sess store.Session
		if err := rows.Scan(&sess.ID, &sess.PID, &sess.Name, &sess.ActivatedAt, &sess.DeactivatedAt, &sess.EndReason); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}
