package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps records in the kv table and history in events.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for tests and maintenance.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) LoadAssignments(ctx context.Context) ([]AssignmentRecord, error) {
	raw, err := s.get(ctx, KeyAssignments)
	if err != nil {
		return nil, err
	}
	return DecodeAssignments(raw)
}

func (s *SQLiteStore) SaveAssignments(ctx context.Context, records []AssignmentRecord) error {
	data, err := encodeAssignments(records)
	if err != nil {
		return err
	}
	return s.put(ctx, KeyAssignments, data)
}

func (s *SQLiteStore) LoadActivityLog(ctx context.Context) (ActivityRecord, error) {
	raw, err := s.get(ctx, KeyActivities)
	if err != nil {
		return nil, err
	}
	return DecodeActivityLog(raw)
}

func (s *SQLiteStore) SaveActivityLog(ctx context.Context, log ActivityRecord) error {
	data, err := encodeActivityLog(log)
	if err != nil {
		return err
	}
	return s.put(ctx, KeyActivities, data)
}

func (s *SQLiteStore) AppendEvent(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	done := 0
	if ev.Done {
		done = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (at, kind, item_id, day, done, xp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.At.UTC().Format(time.RFC3339Nano), ev.Kind, ev.ItemID, ev.Day, done, ev.XP)
	if err != nil {
		return fmt.Errorf("event insert: %w", err)
	}
	return nil
}

// RecentEvents returns up to n events, newest first.
func (s *SQLiteStore) RecentEvents(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, kind, item_id, day, done, xp
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("events query: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var at string
		var done int
		if err := rows.Scan(&ev.ID, &at, &ev.Kind, &ev.ItemID, &ev.Day, &done, &ev.XP); err != nil {
			return nil, fmt.Errorf("events scan: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("events at %q: %w", at, err)
		}
		ev.At = ts.Local()
		ev.Done = done != 0
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("events rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) put(ctx context.Context, key string, value []byte) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, string(value))
		if err != nil {
			return fmt.Errorf("kv put %s: %w", key, err)
		}
		return nil
	})
}
