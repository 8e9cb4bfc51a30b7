package replay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcrcore/dcr/internal/ir"
)

// sequenceGraph builds A -->* B (sequence flow: A includes and responds to
// B), both initially included, neither executed nor pending.
func sequenceGraph(t *testing.T) *ir.Graph {
	t.Helper()

	events := ir.NewEventSet("A", "B")
	labelMap := map[ir.Event]ir.Label{"A": "go", "B": "stop"}
	roleMap := map[ir.Event]ir.Role{"A": "driver", "B": "driver"}

	includesTo := ir.NewEventMap()
	responseTo := ir.NewEventMap()
	ir.SequenceFlow(includesTo, responseTo, "A", "B")

	m := ir.Marking{
		Executed: ir.NewEventSet(),
		Included: ir.NewEventSet("A", "B"),
		Pending:  ir.NewEventSet(),
	}

	g, err := ir.NewGraph(events, labelMap, roleMap, ir.NewEventMap(), ir.NewEventMap(), responseTo, ir.NewEventMap(), includesTo, m, nil)
	require.NoError(t, err)
	return g
}

func TestReplayTrace_EmptyTraceAcceptsIffAccepting(t *testing.T) {
	g := sequenceGraph(t)
	require.True(t, ReplayTrace(g, ir.RoleTrace{}), "no event pending, so empty trace accepts")

	g.Marking.Pending.Add("B")
	require.False(t, ReplayTrace(g, ir.RoleTrace{}), "B pending and included blocks acceptance")
}

func TestReplayTrace_AcceptsFullRun(t *testing.T) {
	g := sequenceGraph(t)
	trace := ir.RoleTrace{
		{Role: "driver", Activity: "go"},
		{Role: "driver", Activity: "stop"},
	}
	require.True(t, ReplayTrace(g, trace))
}

func TestReplayTrace_RejectsOutOfOrderRun(t *testing.T) {
	g := sequenceGraph(t)
	trace := ir.RoleTrace{
		{Role: "driver", Activity: "stop"},
		{Role: "driver", Activity: "go"},
	}
	require.False(t, ReplayTrace(g, trace), "firing go after stop leaves B pending and included at the end of the trace, so the run does not end in an accepting marking")
}

func TestReplayTrace_UnknownActivitySkippedUnderOpenWorld(t *testing.T) {
	g := sequenceGraph(t)
	trace := ir.RoleTrace{
		{Role: "driver", Activity: "go"},
		{Role: "nobody", Activity: "unicorn"},
		{Role: "driver", Activity: "stop"},
	}
	require.True(t, ReplayTrace(g, trace), "an activity absent from the graph's labels must be skipped, never rejected")
}

func TestReplayTrace_RoleMismatchFindsNoCandidate(t *testing.T) {
	g := sequenceGraph(t)
	trace := ir.RoleTrace{
		{Role: "wrong-role", Activity: "go"},
	}
	require.False(t, ReplayTrace(g, trace))
}

func TestReplayTrace_DisjunctionAcrossAmbiguousLabel(t *testing.T) {
	// Two events share the same label/role; only one is enabled.
	events := ir.NewEventSet("A1", "A2")
	labelMap := map[ir.Event]ir.Label{"A1": "go", "A2": "go"}
	roleMap := map[ir.Event]ir.Role{"A1": "driver", "A2": "driver"}

	m := ir.Marking{
		Executed: ir.NewEventSet(),
		Included: ir.NewEventSet("A2"),
		Pending:  ir.NewEventSet(),
	}
	g, err := ir.NewGraph(events, labelMap, roleMap, ir.NewEventMap(), ir.NewEventMap(), ir.NewEventMap(), ir.NewEventMap(), ir.NewEventMap(), m, nil)
	require.NoError(t, err)

	require.True(t, ReplayTrace(g, ir.RoleTrace{{Role: "driver", Activity: "go"}}),
		"A1 is excluded and disabled, but A2 is enabled - disjunction must try both")
}
