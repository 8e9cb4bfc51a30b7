package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventSet_BasicOps(t *testing.T) {
	s := NewEventSet("A", "B")
	require.True(t, s.Contains("A"))
	require.False(t, s.Contains("C"))
	require.Equal(t, 2, s.Len())

	s.Add("C")
	require.True(t, s.Contains("C"))

	s.Remove("A")
	require.False(t, s.Contains("A"))
}

func TestEventSet_CloneIsIndependent(t *testing.T) {
	s := NewEventSet("A")
	clone := s.Clone()
	clone.Add("B")

	require.False(t, s.Contains("B"), "mutating the clone must not affect the original")
}

func TestEventSet_UnionIntersectDiff(t *testing.T) {
	a := NewEventSet("A", "B")
	b := NewEventSet("B", "C")

	require.True(t, a.Union(b).Equal(NewEventSet("A", "B", "C")))
	require.True(t, a.Intersect(b).Equal(NewEventSet("B")))
	require.True(t, a.Diff(b).Equal(NewEventSet("A")))
}

func TestEventSet_Equal(t *testing.T) {
	require.True(t, NewEventSet("A", "B").Equal(NewEventSet("B", "A")))
	require.False(t, NewEventSet("A").Equal(NewEventSet("A", "B")))
}

func TestEventSet_SortedIsDeterministic(t *testing.T) {
	s := NewEventSet("C", "A", "B")
	require.Equal(t, []Event{"A", "B", "C"}, s.Sorted())
}
