// SPDX-License-Identifier: MIT

// Package store keeps a history of finished runs in an embedded SQLite
// database (pure-Go driver, no cgo).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/tourga/ga"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var (
	// ErrNotFound is returned by Get for an unknown run ID.
	ErrNotFound = errors.New("store: run not found")
	// ErrInvalidRecord is returned by Save for a record without an ID.
	ErrInvalidRecord = errors.New("store: invalid record")
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	label        TEXT NOT NULL DEFAULT '',
	reason       TEXT NOT NULL,
	generations  INTEGER NOT NULL,
	evaluations  INTEGER NOT NULL,
	best_length  REAL NOT NULL,
	best_perm    TEXT NOT NULL,
	cities       INTEGER NOT NULL,
	config       TEXT NOT NULL,
	started_at   INTEGER NOT NULL,
	finished_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_finished_at ON runs (finished_at DESC);
`

// Record is one finished run.
type Record struct {
	ID          string    `json:"id"`
	Label       string    `json:"label,omitempty"`
	Reason      ga.Reason `json:"reason"`
	Generations int       `json:"generations"`
	Evaluations int       `json:"evaluations"`
	BestLength  float64   `json:"bestLength"`
	BestPerm    []int     `json:"bestPerm"`
	Cities      int       `json:"cities"`
	Config      ga.Config `json:"config"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Store is a run history backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One writer; also keeps a ":memory:" database alive across calls.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rec, replacing an existing record with the same ID.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	perm, err := json.Marshal(rec.BestPerm)
	if err != nil {
		return fmt.Errorf("store: encode perm: %w", err)
	}
	cfg, err := json.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("store: encode config: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs
	(id, label, reason, generations, evaluations, best_length, best_perm, cities, config, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Label, string(rec.Reason), rec.Generations, rec.Evaluations,
		rec.BestLength, string(perm), rec.Cities, string(cfg),
		rec.StartedAt.UnixNano(), rec.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `id, label, reason, generations, evaluations, best_length, best_perm, cities, config, started_at, finished_at`

// Get returns the record with the given ID or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM runs WHERE id = ?`, id)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns up to limit records, most recently finished first.
// limit <= 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM runs ORDER BY finished_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (Record, error) {
	var (
		rec              Record
		reason           string
		perm, cfg        string
		started, finished int64
	)
	err := sc.Scan(&rec.ID, &rec.Label, &reason, &rec.Generations, &rec.Evaluations,
		&rec.BestLength, &perm, &rec.Cities, &cfg, &started, &finished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("store: scan: %w", err)
	}
	if err = json.Unmarshal([]byte(perm), &rec.BestPerm); err != nil {
		return Record{}, fmt.Errorf("store: decode perm of %s: %w", rec.ID, err)
	}
	if err = json.Unmarshal([]byte(cfg), &rec.Config); err != nil {
		return Record{}, fmt.Errorf("store: decode config of %s: %w", rec.ID, err)
	}
	rec.Reason = ga.Reason(reason)
	rec.StartedAt = time.Unix(0, started).UTC()
	rec.FinishedAt = time.Unix(0, finished).UTC()
	return rec, nil
}
