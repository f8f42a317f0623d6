package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type BillingRunStore struct {
	db *sql.DB
}

func NewBillingRunStore(db *sql.DB) *BillingRunStore {
	return &BillingRunStore{db: db}
}

// Latest returns the time of the most recent billing run, or nil if no
// run has been recorded yet.
func (s *BillingRunStore) Latest(ctx context.Context) (*time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(time) FROM billing_runs`).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("query latest billing run: %w", err)
	}
	if !raw.Valid {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Insert records a billing run marker, bounding the "new since last run"
// selection of the next run.
func (s *BillingRunStore) Insert(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO billing_runs (time) VALUES (?)`, formatTime(t))
	if err != nil {
		return fmt.Errorf("insert billing run: %w", err)
	}
	return nil
}
