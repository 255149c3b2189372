// Package store persists canonical events in a file-based SQLite database
// keyed by the composite (id, source) identity.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
  id        TEXT NOT NULL,
  title     TEXT NOT NULL,
  category  TEXT NOT NULL,
  latitude  REAL NOT NULL,
  longitude REAL NOT NULL,
  source    TEXT NOT NULL,
  url       TEXT NOT NULL,
  date      TEXT NOT NULL,
  magnitude REAL NOT NULL,
  PRIMARY KEY (id, source)
);
`

// Store is the durable event store. Upserts are atomic per (id, source) key;
// readers never observe a half-written row.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path and initializes the
// schema. The busy timeout bounds lock waits under writer contention.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := New(db)
	if err := s.init(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle. Used by Open and by tests that
// substitute a mocked handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts the event or, when its (id, source) key already exists,
// overwrites the mutable columns. id and source are never changed. Repeating
// an identical upsert produces no observable change.
func (s *Store) Upsert(ctx context.Context, e domain.DisasterEvent) error {
	const q = `
INSERT INTO events (id, title, category, latitude, longitude, source, url, date, magnitude)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id, source) DO UPDATE SET
  title     = excluded.title,
  category  = excluded.category,
  latitude  = excluded.latitude,
  longitude = excluded.longitude,
  url       = excluded.url,
  date      = excluded.date,
  magnitude = excluded.magnitude;
`
	_, err := s.db.ExecContext(ctx, q,
		e.ID, e.Title, e.Category, e.Latitude, e.Longitude, e.Source, e.URL, e.Date, e.Magnitude)
	if err != nil {
		return fmt.Errorf("upsert event %s/%s: %w", e.Source, e.ID, err)
	}
	return nil
}

// ListAll returns every stored event ordered by date descending. The sort is
// lexicographic over the stored text, matching the feed-native encodings.
func (s *Store) ListAll(ctx context.Context) ([]domain.DisasterEvent, error) {
	return s.ListFiltered(ctx, "", "")
}

// ListFiltered returns events matching the supplied equality filters. An
// empty filter value means no constraint; both filters AND together.
func (s *Store) ListFiltered(ctx context.Context, category, source string) ([]domain.DisasterEvent, error) {
	q := `SELECT id, title, category, latitude, longitude, source, url, date, magnitude FROM events WHERE 1=1`
	var args []any
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	if source != "" {
		q += ` AND source = ?`
		args = append(args, source)
	}
	q += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []domain.DisasterEvent
	for rows.Next() {
		var e domain.DisasterEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &e.Latitude, &e.Longitude,
			&e.Source, &e.URL, &e.Date, &e.Magnitude); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return out, nil
}
