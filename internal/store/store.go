// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package store keeps the history of processed recordings in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Run is the summary row of one processed recording.
type Run struct {
	ID             string    `json:"id"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
	SampleFreq     int       `json:"sample_freq"`
	Samples        int       `json:"samples"`
	Rule           string    `json:"rule"`
	FloatingWindow int       `json:"floating_window"`
	Radius         float64   `json:"radius"`
	RadiusWindows  int       `json:"radius_windows"`
	SkippedWindows int       `json:"skipped_windows"`
	NoiseMean      float64   `json:"noise_mean"`
	NoisePeak      float64   `json:"noise_peak"`
}

// Point is one reconstructed position with the noise that was added back.
type Point struct {
	Index    int    `json:"index"`
	Position r3.Vec `json:"position"`
	Noise    r3.Vec `json:"noise"`
}

type Store struct {
	db *sql.DB
}

var pragmas = []string{
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// Open opens (or creates) the database at path and migrates it to the
// latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// pragmas are per connection
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a run and its points in one transaction. An empty ID is
// filled with a new UUID and a zero CreatedAt with the current time; the
// stored run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, points []Point) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, source, created_at, sample_freq, samples, rule, floating_window,
			radius, radius_windows, skipped_windows, noise_mean, noise_peak
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.UnixNano(), run.SampleFreq, run.Samples, run.Rule,
		run.FloatingWindow, run.Radius, run.RadiusWindows, run.SkippedWindows,
		run.NoiseMean, run.NoisePeak,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_points (run_id, idx, x, y, z, noise_x, noise_y, noise_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, run.ID, p.Index,
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Noise.X, p.Noise.Y, p.Noise.Z); err != nil {
			return Run{}, fmt.Errorf("failed to insert point %d: %w", p.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

const runColumns = `run_id, source, created_at, sample_freq, samples, rule, floating_window,
	radius, radius_windows, skipped_windows, noise_mean, noise_peak`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var created int64
	err := row.Scan(&r.ID, &r.Source, &created, &r.SampleFreq, &r.Samples, &r.Rule,
		&r.FloatingWindow, &r.Radius, &r.RadiusWindows, &r.SkippedWindows,
		&r.NoiseMean, &r.NoisePeak)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run or ErrNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}
	return r, nil
}

// GetRunPoints returns the points of a run in sample order.
func (s *Store) GetRunPoints(ctx context.Context, id string) ([]Point, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, x, y, z, noise_x, noise_y, noise_z
		FROM run_points WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	points := []Point{}
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.Index, &p.Position.X, &p.Position.Y, &p.Position.Z,
			&p.Noise.X, &p.Noise.Y, &p.Noise.Z); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DeleteRun removes a run and its points.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
