package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dcrcore/dcr/internal/ir"
	"github.com/dcrcore/dcr/internal/replay"
)

// RunKind identifies which of the three conformance operations a Run
// record reports on.
type RunKind string

const (
	RunReplay   RunKind = "replay"
	RunQuantify RunKind = "quantify"
	RunAlign    RunKind = "align"
)

// Run is a persisted conformance report: the outcome of one replay,
// quantification, or alignment against a graph, keyed by the graph's
// content-addressed hash so later queries can group runs by graph.
type Run struct {
	ID        string
	Seq       int64
	Kind      RunKind
	GraphHash string
	Trace     []string
	Report    any
}

// WriteReplay persists a ReplayTrace outcome.
func (s *Store) WriteReplay(ctx context.Context, id string, seq int64, g *ir.Graph, trace ir.RoleTrace, accepted bool) error {
	graphHash, err := ir.GraphHash(g)
	if err != nil {
		return fmt.Errorf("write replay run: %w", err)
	}
	reportJSON, err := json.Marshal(struct {
		Accepted bool `json:"accepted"`
	}{Accepted: accepted})
	if err != nil {
		return fmt.Errorf("write replay run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, kind, graph_hash, trace_json, accepted, report_json, created_at_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, seq, string(RunReplay), graphHash, traceJSON(trace), accepted, reportJSON, seq)
	if err != nil {
		return fmt.Errorf("write replay run: %w", err)
	}
	return nil
}

// WriteQuantify persists a QuantifyViolations outcome.
func (s *Store) WriteQuantify(ctx context.Context, id string, seq int64, g *ir.Graph, trace ir.RoleTrace, report replay.ViolationReport) error {
	graphHash, err := ir.GraphHash(g)
	if err != nil {
		return fmt.Errorf("write quantify run: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("write quantify run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, kind, graph_hash, trace_json, total_violations, report_json, created_at_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, seq, string(RunQuantify), graphHash, traceJSON(trace), report.TotalViolations, reportJSON, seq)
	if err != nil {
		return fmt.Errorf("write quantify run: %w", err)
	}
	return nil
}

// WriteAlign persists an Align outcome.
func (s *Store) WriteAlign(ctx context.Context, id string, seq int64, g *ir.Graph, trace ir.Trace, alignment ir.Alignment) error {
	graphHash, err := ir.GraphHash(g)
	if err != nil {
		return fmt.Errorf("write align run: %w", err)
	}
	reportJSON, err := ir.MarshalCanonical(alignment)
	if err != nil {
		return fmt.Errorf("write align run: %w", err)
	}

	var cost sql.NullFloat64
	if !alignment.IsInfeasible() {
		cost = sql.NullFloat64{Float64: alignment.Cost, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, kind, graph_hash, trace_json, cost, infeasible, report_json, created_at_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, seq, string(RunAlign), graphHash, labelTraceJSON(trace), cost, alignment.IsInfeasible(), reportJSON, seq)
	if err != nil {
		return fmt.Errorf("write align run: %w", err)
	}
	return nil
}

func traceJSON(trace ir.RoleTrace) string {
	b, _ := json.Marshal(trace)
	return string(b)
}

func labelTraceJSON(trace ir.Trace) string {
	b, _ := json.Marshal(trace)
	return string(b)
}
