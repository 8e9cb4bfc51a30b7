package ir

import "sort"

// EventSet is a set of Event identifiers. A nil EventSet reads as an empty
// set, but Add on it panics. Add and Remove mutate the receiver in place;
// Clone, Union, Intersect and Diff return new sets, which is what lets
// scratch markings (see engine.WithScratchMarking) be snapshotted by plain
// assignment after Clone.
type EventSet map[Event]struct{}

// NewEventSet builds an EventSet from the given events.
func NewEventSet(events ...Event) EventSet {
	s := make(EventSet, len(events))
	for _, e := range events {
		s[e] = struct{}{}
	}
	return s
}

// Contains reports whether e is a member of the set.
func (s EventSet) Contains(e Event) bool {
	_, ok := s[e]
	return ok
}

// Len returns the number of members.
func (s EventSet) Len() int {
	return len(s)
}

// Add inserts e into the set, mutating the receiver in place.
func (s EventSet) Add(e Event) {
	s[e] = struct{}{}
}

// Remove deletes e from the set, mutating the receiver in place.
func (s EventSet) Remove(e Event) {
	delete(s, e)
}

// Clone returns an independent copy of the set.
func (s EventSet) Clone() EventSet {
	out := make(EventSet, len(s))
	for e := range s {
		out[e] = struct{}{}
	}
	return out
}

// Union returns a new set containing every member of s and other.
func (s EventSet) Union(other EventSet) EventSet {
	out := make(EventSet, s.Len()+other.Len())
	for e := range s {
		out[e] = struct{}{}
	}
	for e := range other {
		out[e] = struct{}{}
	}
	return out
}

// Intersect returns a new set containing members present in both s and other.
func (s EventSet) Intersect(other EventSet) EventSet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(EventSet, small.Len())
	for e := range small {
		if big.Contains(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Diff returns a new set containing members of s that are not in other.
func (s EventSet) Diff(other EventSet) EventSet {
	out := make(EventSet, s.Len())
	for e := range s {
		if !other.Contains(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same members.
func (s EventSet) Equal(other EventSet) bool {
	if len(s) != len(other) {
		return false
	}
	for e := range s {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// Sorted returns the set's members in ascending lexical order. Every
// recursive search in this codebase (replay, quantification, alignment)
// iterates event sets via Sorted so that search order - and therefore
// which minimal-cost branch is found first - is reproducible across runs.
func (s EventSet) Sorted() []Event {
	out := make([]Event, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
