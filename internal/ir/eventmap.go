package ir

// EventMap is a total mapping Event -> EventSet representing one of the
// graph's binary relations (or a piece of per-event auxiliary state, such
// as the quantifier's exSinceIn/exSinceEx bookkeeping). Keys logically
// include every event in a graph; an absent key means the empty set, never
// nil panic - callers use At rather than direct indexing.
type EventMap map[Event]EventSet

// NewEventMap returns an empty EventMap.
func NewEventMap() EventMap {
	return make(EventMap)
}

// At returns the set associated with e, or an empty set if e has no entry.
// The returned set must be treated as read-only unless the caller first
// calls Ensure - it may be the map's zero value for a missing key.
func (m EventMap) At(e Event) EventSet {
	if s, ok := m[e]; ok {
		return s
	}
	return EventSet{}
}

// Ensure returns the set associated with e, creating and storing an empty
// one first if none exists. Use this before mutating in place.
func (m EventMap) Ensure(e Event) EventSet {
	s, ok := m[e]
	if !ok {
		s = make(EventSet)
		m[e] = s
	}
	return s
}

// Set replaces the set associated with e.
func (m EventMap) Set(e Event, s EventSet) {
	m[e] = s
}

// Add inserts target into the set associated with source, creating the
// entry if needed. This is the idiom relation-builder helpers use to wire
// one edge at a time (see SequenceFlow, SelfExcluding).
func (m EventMap) Add(source, target Event) {
	m.Ensure(source).Add(target)
}

// Clone returns an independent deep copy of the map.
func (m EventMap) Clone() EventMap {
	out := make(EventMap, len(m))
	for e, s := range m {
		out[e] = s.Clone()
	}
	return out
}

// Union returns the union, over all events referenced by m, of every set in
// m. This is how Graph derives its optimised `conditions` filter: the union
// of everything that conditions anything.
func (m EventMap) Union() EventSet {
	out := make(EventSet)
	for _, s := range m {
		for e := range s {
			out[e] = struct{}{}
		}
	}
	return out
}

// Reverse builds the reverse relation: for every (source, target) edge in
// m, the reverse map has an edge (target, source). Used to derive
// includesFor/excludesFor from includesTo/excludesTo.
func (m EventMap) Reverse() EventMap {
	out := make(EventMap)
	for source, targets := range m {
		for target := range targets {
			out.Add(target, source)
		}
	}
	return out
}
