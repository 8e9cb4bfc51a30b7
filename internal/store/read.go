package store

import (
	"context"
	"database/sql"
	"fmt"
)

// RunSummary is a lightweight projection of a persisted run, returned by
// queries that list runs without decoding the full report payload.
type RunSummary struct {
	ID        string
	Seq       int64
	Kind      string
	GraphHash string
	Accepted  sql.NullBool
	Cost      sql.NullFloat64
	Infeasible bool
}

// ListRuns returns every run recorded for graphHash, ordered by seq then id
// for deterministic results across repeated queries.
func (s *Store) ListRuns(ctx context.Context, graphHash string) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, kind, graph_hash, accepted, cost, infeasible
		FROM runs
		WHERE graph_hash = ?
		ORDER BY seq ASC, id ASC
	`, graphHash)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Seq, &r.Kind, &r.GraphHash, &r.Accepted, &r.Cost, &r.Infeasible); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// ReadReport returns the raw report JSON recorded for a given run id.
func (s *Store) ReadReport(ctx context.Context, id string) ([]byte, error) {
	var report []byte
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM runs WHERE id = ?`, id).Scan(&report)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}
	return report, nil
}
