package cli

import (
	"context"

	"github.com/google/uuid"

	"github.com/dcrcore/dcr/internal/ir"
	"github.com/dcrcore/dcr/internal/replay"
	"github.com/dcrcore/dcr/internal/store"
	"github.com/dcrcore/dcr/internal/testutil"
)

// runSeq orders run-log rows written within a single CLI process, starting
// at 1. The clock is fresh per process, so rows that separate invocations
// append to the same `--log` file can carry the same seq; ListRuns then
// orders them by id.
var runSeq = testutil.NewDeterministicClock()

func logReplayRun(ctx context.Context, logPath string, g *ir.Graph, trace ir.RoleTrace, accepted bool) error {
	s, err := store.Open(logPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.WriteReplay(ctx, uuid.Must(uuid.NewV7()).String(), runSeq.Next(), g, trace, accepted)
}

func logQuantifyRun(ctx context.Context, logPath string, g *ir.Graph, trace ir.RoleTrace, report replay.ViolationReport) error {
	s, err := store.Open(logPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.WriteQuantify(ctx, uuid.Must(uuid.NewV7()).String(), runSeq.Next(), g, trace, report)
}

func logAlignRun(ctx context.Context, logPath string, g *ir.Graph, trace ir.Trace, alignment ir.Alignment) error {
	s, err := store.Open(logPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.WriteAlign(ctx, uuid.Must(uuid.NewV7()).String(), runSeq.Next(), g, trace, alignment)
}
