// Package history keeps heart-rate samples in SQLite and serves the newest one.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// queryTimeout bounds the per-frame lookup so a slow disk cannot stall a redraw.
const queryTimeout = 200 * time.Millisecond

// Store wraps SQLite access for heart-rate samples.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS heart_rate_samples (
			id INTEGER PRIMARY KEY,
			taken_at INTEGER NOT NULL,
			bpm INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_heart_rate_samples_taken_at ON heart_rate_samples(taken_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate history: %w", err)
		}
	}
	return nil
}

// Record stores one raw sample; InvalidHeartRateSample is kept as-is.
func (s *Store) Record(ctx context.Context, takenAt time.Time, bpm int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO heart_rate_samples (taken_at, bpm) VALUES (?, ?)`,
		takenAt.UnixNano(), bpm)
	if err != nil {
		return fmt.Errorf("record heart rate sample: %w", err)
	}
	return nil
}

// Latest returns the newest sample, or ok=false when the history is empty.
func (s *Store) Latest(ctx context.Context) (bpm int, takenAt time.Time, ok bool, err error) {
	var nanos int64
	row := s.db.QueryRowContext(ctx,
		`SELECT bpm, taken_at FROM heart_rate_samples ORDER BY taken_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&bpm, &nanos); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, time.Time{}, false, nil
		}
		return 0, time.Time{}, false, fmt.Errorf("latest heart rate sample: %w", err)
	}
	return bpm, time.Unix(0, nanos).UTC(), true, nil
}

// Prune deletes samples older than cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM heart_rate_samples WHERE taken_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune heart rate samples: %w", err)
	}
	return res.RowsAffected()
}

// LastHeartRateSample implements state.HeartRateHistory. Lookup errors count
// as an empty history.
func (s *Store) LastHeartRateSample() (int, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	bpm, _, ok, err := s.Latest(ctx)
	if err != nil {
		return 0, false
	}
	return bpm, ok
}
