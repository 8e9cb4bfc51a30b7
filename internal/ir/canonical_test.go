package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()

	events := NewEventSet("A", "B")
	labelMap := map[Event]Label{"A": "go", "B": "stop"}
	roleMap := map[Event]Role{"A": "driver", "B": "driver"}

	includesTo := NewEventMap()
	responseTo := NewEventMap()
	SequenceFlow(includesTo, responseTo, "A", "B")

	m := Marking{Executed: NewEventSet(), Included: NewEventSet("A", "B"), Pending: NewEventSet()}

	g, err := NewGraph(events, labelMap, roleMap, NewEventMap(), NewEventMap(), responseTo, NewEventMap(), includesTo, m, nil)
	require.NoError(t, err)
	return g
}

func TestMarshalCanonical_MarkingRoundTrips(t *testing.T) {
	m := Marking{Executed: NewEventSet("A"), Included: NewEventSet("A", "B"), Pending: NewEventSet("B")}

	data, err := MarshalCanonical(m)
	require.NoError(t, err)

	got, err := ParseMarking(data)
	require.NoError(t, err)
	require.True(t, m.Equal(got))
}

func TestMarshalCanonical_MarkingSetsAreSortedArrays(t *testing.T) {
	m := Marking{Executed: NewEventSet("C", "A", "B"), Included: NewEventSet(), Pending: NewEventSet()}
	data, err := MarshalCanonical(m)
	require.NoError(t, err)
	require.Contains(t, string(data), `"executed":["A","B","C"]`)
}

func TestMarshalCanonical_GraphRoundTrips(t *testing.T) {
	g := testGraph(t)

	data, err := MarshalCanonical(g)
	require.NoError(t, err)

	got, err := ParseGraph(data)
	require.NoError(t, err)

	require.True(t, g.Events.Equal(got.Events))
	require.True(t, g.Marking.Equal(got.Marking))
	require.Equal(t, g.LabelMap, got.LabelMap)
}

func TestMarshalCanonical_AlignmentRoundTrips(t *testing.T) {
	a := Alignment{Cost: 2, Trace: []Event{"A", "B"}}
	data, err := MarshalCanonical(a)
	require.NoError(t, err)

	got, err := ParseAlignment(data)
	require.NoError(t, err)
	require.Equal(t, a.Cost, got.Cost)
	require.Equal(t, a.Trace, got.Trace)
}

func TestMarshalCanonical_InfeasibleAlignmentUsesSentinel(t *testing.T) {
	a := Alignment{Cost: InfCost}
	data, err := MarshalCanonical(a)
	require.NoError(t, err)
	require.Contains(t, string(data), `"infeasible":true`)

	got, err := ParseAlignment(data)
	require.NoError(t, err)
	require.True(t, got.IsInfeasible())
}

func TestMarshalCanonical_UnsupportedTypeErrors(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"foo": "bar"})
	require.Error(t, err)
}

func TestMarshalCanonical_LabelsNFCNormalized(t *testing.T) {
	// "e" followed by a combining acute accent (U+0301) vs its precomposed
	// single-codepoint form (U+00E9). MarshalCanonical must normalize both
	// to the same NFC string.
	decomposed := Label("café")
	precomposed := Label("café")

	g, err := NewGraph(
		NewEventSet("A"),
		map[Event]Label{"A": decomposed},
		map[Event]Role{"A": "r"},
		NewEventMap(), NewEventMap(), NewEventMap(), NewEventMap(), NewEventMap(),
		Marking{Executed: NewEventSet(), Included: NewEventSet("A"), Pending: NewEventSet()},
		nil,
	)
	require.NoError(t, err)

	data, err := MarshalCanonical(g)
	require.NoError(t, err)

	got, err := ParseGraph(data)
	require.NoError(t, err)
	require.Equal(t, precomposed, got.LabelMap["A"])
}
