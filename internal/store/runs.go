package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded figure render.
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Recipe       string    `json:"recipe"`
	Rule         string    `json:"rule"`
	IceMass      float64   `json:"ice_mass"`
	Density      float64   `json:"density"`
	Points       int       `json:"points"`
	OutputPath   string    `json:"output_path"`
	OutputSHA256 string    `json:"output_sha256"`
}

// RecordRun inserts a run into the log. A zero ID gets a fresh UUID and a
// zero CreatedAt gets the current UTC time; the stored values are returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, recipe, rule, ice_mass, density, points, output_path, output_sha256)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Recipe,
		run.Rule,
		run.IceMass,
		run.Density,
		run.Points,
		run.OutputPath,
		run.OutputSHA256,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, recipe, rule, ice_mass, density, points, output_path, output_sha256
		FROM runs
		ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Recipe, &r.Rule, &r.IceMass, &r.Density, &r.Points, &r.OutputPath, &r.OutputSHA256); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", created, err)
		}
		r.CreatedAt = ts
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
