package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcrcore/dcr/internal/compiler"
	"github.com/dcrcore/dcr/internal/ir"
	"github.com/dcrcore/dcr/internal/store"
)

func TestCLI_Replay_LogPersistsRun(t *testing.T) {
	dir := writeCUEGraph(t)
	trace := writeJSON(t, "trace.json", `[{"role":"driver","activity":"go"},{"role":"driver","activity":"stop"}]`)
	logPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := runCLI(t, "replay", dir, trace, "--log", logPath)
	require.NoError(t, err)

	g, errs := compiler.CompileGraph(dir)
	require.Empty(t, errs)
	graphHash, err := ir.GraphHash(g)
	require.NoError(t, err)

	s, err := store.Open(logPath)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), graphHash)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "replay", runs[0].Kind)
	require.True(t, runs[0].Accepted.Valid)
	require.True(t, runs[0].Accepted.Bool)
}

func TestCLI_Align_LogPersistsFeasibleRun(t *testing.T) {
	dir := writeCUEGraph(t)
	trace := writeJSON(t, "labels.json", `["nonexistent"]`)
	logPath := filepath.Join(t.TempDir(), "runs.db")

	// "nonexistent" matches no event label, so the aligner can only
	// trace-skip it - which is feasible, so this exercises the ordinary
	// feasible-alignment log path rather than the infeasible one.
	out, err := runCLI(t, "--format", "json", "align", dir, trace, "--log", logPath)
	require.NoError(t, err)
	require.Contains(t, out, `"cost":`)

	g, errs := compiler.CompileGraph(dir)
	require.Empty(t, errs)
	graphHash, err := ir.GraphHash(g)
	require.NoError(t, err)

	s, err := store.Open(logPath)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), graphHash)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "align", runs[0].Kind)
}
