package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarking_CloneIsIndependent(t *testing.T) {
	m := Marking{Executed: NewEventSet("A"), Included: NewEventSet("A"), Pending: NewEventSet()}
	clone := m.Clone()
	clone.Executed.Add("B")

	require.False(t, m.Executed.Contains("B"))
}

func TestMarking_Equal(t *testing.T) {
	m1 := Marking{Executed: NewEventSet("A"), Included: NewEventSet("A", "B"), Pending: NewEventSet()}
	m2 := Marking{Executed: NewEventSet("A"), Included: NewEventSet("B", "A"), Pending: NewEventSet()}
	require.True(t, m1.Equal(m2))

	m3 := Marking{Executed: NewEventSet(), Included: NewEventSet("A", "B"), Pending: NewEventSet()}
	require.False(t, m1.Equal(m3))
}

func TestMarking_KeyIsStableUnderSetOrder(t *testing.T) {
	m1 := Marking{Executed: NewEventSet("B", "A"), Included: NewEventSet(), Pending: NewEventSet()}
	m2 := Marking{Executed: NewEventSet("A", "B"), Included: NewEventSet(), Pending: NewEventSet()}
	require.Equal(t, m1.Key(), m2.Key())
}

func TestMarking_KeyDistinguishesSections(t *testing.T) {
	m1 := Marking{Executed: NewEventSet("A"), Included: NewEventSet(), Pending: NewEventSet()}
	m2 := Marking{Executed: NewEventSet(), Included: NewEventSet("A"), Pending: NewEventSet()}
	require.NotEqual(t, m1.Key(), m2.Key())
}
