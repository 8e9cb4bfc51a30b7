package ir

import "strings"

// Marking is the dynamic state of a DCR graph: which events have fired,
// which are currently part of the process, and which owe a future
// execution.
type Marking struct {
	// Executed holds events that have fired at least once since their
	// last exclusion.
	Executed EventSet

	// Included holds events currently part of the process.
	Included EventSet

	// Pending holds events that owe a future execution.
	Pending EventSet
}

// NewMarking returns a marking with empty sets.
func NewMarking() Marking {
	return Marking{
		Executed: make(EventSet),
		Included: make(EventSet),
		Pending:  make(EventSet),
	}
}

// Clone returns an independent deep copy. WithScratchMarking relies on this
// to take a snapshot that execute can freely mutate without touching the
// original.
func (m Marking) Clone() Marking {
	return Marking{
		Executed: m.Executed.Clone(),
		Included: m.Included.Clone(),
		Pending:  m.Pending.Clone(),
	}
}

// Equal reports whether two markings hold exactly the same three sets.
func (m Marking) Equal(other Marking) bool {
	return m.Executed.Equal(other.Executed) &&
		m.Included.Equal(other.Included) &&
		m.Pending.Equal(other.Pending)
}

// Key returns a canonical string encoding of the marking: each of the three
// sets sorted and joined, the three sections separated unambiguously. It is
// the markingKey used by the aligner's two-level memoisation cache
// (alignState[remainingTraceLen][markingKey]) and is safe to use as a Go
// map key.
//
// The separators (",", ";") are not escaped, so the sections are
// unambiguous only while no Event identifier contains either character;
// neither NewGraph nor the compiler rejects identifiers that do.
func (m Marking) Key() string {
	var b strings.Builder
	writeSortedSet(&b, m.Executed)
	b.WriteByte(';')
	writeSortedSet(&b, m.Included)
	b.WriteByte(';')
	writeSortedSet(&b, m.Pending)
	return b.String()
}

func writeSortedSet(b *strings.Builder, s EventSet) {
	for i, e := range s.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(e))
	}
}
