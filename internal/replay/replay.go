package replay

import (
	"github.com/dcrcore/dcr/internal/engine"
	"github.com/dcrcore/dcr/internal/ir"
)

// ReplayTrace reports whether trace corresponds to some accepting run of g.
//
//   - An empty trace accepts iff g's current marking is already accepting.
//   - An activity not present in g's label set is skipped unchanged (the
//     open-world principle): unknown activities are never rejected.
//   - Otherwise, every event whose label and role match the head of trace
//     is tried in turn: if enabled, it fires, the tail is replayed
//     recursively, and the marking is restored regardless of outcome. The
//     overall result is the disjunction across every tried event - if any
//     produces an accepting continuation, the trace is accepted.
//
// Recursion always resolves scope fresh via Graph.Resolve for the current
// activity, so a trace may interleave activities belonging to different
// sub-processes; each sub-process's own Marking persists across steps
// exactly as the top-level Graph's does, since only the tried event's own
// scope is scratch-cloned for the duration of the attempt.
func ReplayTrace(g *ir.Graph, trace ir.RoleTrace) bool {
	if len(trace) == 0 {
		return engine.IsAccepting(g)
	}

	step := trace[0]
	rest := trace[1:]

	scope, ok := g.Resolve(step.Activity)
	if !ok {
		return ReplayTrace(g, rest)
	}

	accepted := false
	for _, e := range candidateEvents(scope, step) {
		if !engine.IsEnabled(e, scope) {
			continue
		}

		_ = engine.WithScratchMarking(scope, func() error {
			engine.Execute(e, scope)
			if ReplayTrace(g, rest) {
				accepted = true
			}
			return nil
		})

		if accepted {
			break
		}
	}

	return accepted
}
