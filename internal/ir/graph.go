package ir

import (
	"errors"
	"fmt"
	"sort"
)

// Graph is an immutable DCR graph structure plus its current (mutable)
// Marking. Relations are never mutated after construction; only Marking
// evolves, via engine.Execute.
type Graph struct {
	Events EventSet

	Labels      map[Label]struct{}
	LabelMap    map[Event]Label
	LabelMapInv map[Label]EventSet

	RoleMap map[Event]Role

	ConditionsFor EventMap // e needs members executed or excluded
	MilestonesFor EventMap // members pending-and-included block e
	ResponseTo    EventMap // members made pending when e fires
	ExcludesTo    EventMap // members removed from Included when e fires
	IncludesTo    EventMap // members added to Included when e fires

	Marking Marking

	// SubProcessMap scopes a subset of events to a nested Graph. Only
	// replay and quantification descend into it (see align's flattened-
	// graph note); the execution kernel treats whichever *Graph it is
	// handed - root or nested - as the whole world for that call.
	SubProcessMap map[Event]*Graph

	// conditions is the derived "optimised" filter: the union of every
	// event that conditions anything. Execute only ever needs to write an
	// event into Executed when that event is a member of this set -
	// nothing conditions on an event outside it, so the write would be
	// observationally inert.
	conditions EventSet

	// includesFor/excludesFor are the reverse relations of IncludesTo/
	// ExcludesTo, used by the alignment reachability oracle to ask "what
	// can make e included/excluded".
	includesFor EventMap
	excludesFor EventMap

	// responseFor is the reverse of ResponseTo, used by the quantifier to
	// find, for a pending event, which executions created the obligation.
	responseFor EventMap
}

// NewGraph validates and constructs a Graph from its component relations.
// It is the single point where the "graph structural inconsistency" error
// kind from the specification is detected: every event referenced from any
// relation, role map, label map, or marking set must be a member of
// events, or construction refuses to proceed.
func NewGraph(
	events EventSet,
	labelMap map[Event]Label,
	roleMap map[Event]Role,
	conditionsFor, milestonesFor, responseTo, excludesTo, includesTo EventMap,
	marking Marking,
	subProcessMap map[Event]*Graph,
) (*Graph, error) {
	g := &Graph{
		Events:        events,
		LabelMap:      labelMap,
		RoleMap:       roleMap,
		ConditionsFor: conditionsFor,
		MilestonesFor: milestonesFor,
		ResponseTo:    responseTo,
		ExcludesTo:    excludesTo,
		IncludesTo:    includesTo,
		Marking:       marking,
		SubProcessMap: subProcessMap,
	}

	if errs := g.checkConsistency(); len(errs) > 0 {
		return nil, fmt.Errorf("inconsistent graph: %w", joinInconsistencies(errs))
	}

	g.Labels = make(map[Label]struct{}, len(labelMap))
	g.LabelMapInv = make(map[Label]EventSet, len(labelMap))
	for e, l := range labelMap {
		g.Labels[l] = struct{}{}
		labelMapInvAdd(g.LabelMapInv, l, e)
	}

	g.conditions = conditionsFor.Union()
	g.includesFor = includesTo.Reverse()
	g.excludesFor = excludesTo.Reverse()
	g.responseFor = responseTo.Reverse()

	return g, nil
}

// labelMapInvAdd is a tiny helper so LabelMapInv (a map[Label]EventSet, not an
// EventMap) can be built with the same one-edge-at-a-time idiom as EventMap.
func labelMapInvAdd(m map[Label]EventSet, l Label, e Event) {
	s, ok := m[l]
	if !ok {
		s = make(EventSet)
		m[l] = s
	}
	s.Add(e)
}

// Conditions returns the derived union of every event that conditions
// anything (the "optimised" filter).
func (g *Graph) Conditions() EventSet { return g.conditions }

// IncludesFor returns the reverse of IncludesTo: events that include e.
func (g *Graph) IncludesFor(e Event) EventSet { return g.includesFor.At(e) }

// ExcludesFor returns the reverse of ExcludesTo: events that exclude e.
func (g *Graph) ExcludesFor(e Event) EventSet { return g.excludesFor.At(e) }

// ResponseFor returns the reverse of ResponseTo: events whose firing made e
// pending.
func (g *Graph) ResponseFor(e Event) EventSet { return g.responseFor.At(e) }

// Resolve finds the graph - g itself, or a graph reachable by descending
// through SubProcessMap - whose LabelMapInv declares the given label. It
// implements the "callers must supply the correct scope" contract from the
// specification's sub-process note: replay and quantification resolve
// scope this way before calling isEnabled/execute; alignment never calls
// Resolve at all, since it operates on a flattened top-level graph only.
func (g *Graph) Resolve(l Label) (*Graph, bool) {
	if _, ok := g.Labels[l]; ok {
		return g, true
	}
	for _, sub := range g.SubProcessMap {
		if found, ok := sub.Resolve(l); ok {
			return found, true
		}
	}
	return nil, false
}

type inconsistency struct {
	field string
	event Event
}

func (i inconsistency) Error() string {
	return fmt.Sprintf("%s references event %q which is not a member of events", i.field, i.event)
}

func joinInconsistencies(errs []inconsistency) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	sort.Strings(msgs)
	joined := msgs[0]
	for _, m := range msgs[1:] {
		joined += "; " + m
	}
	return errors.New(joined)
}

// checkConsistency implements the §3 invariant: every event referenced
// from any relation, role map, or marking is a member of events.
func (g *Graph) checkConsistency() []inconsistency {
	var errs []inconsistency

	checkEvent := func(field string, e Event) {
		if !g.Events.Contains(e) {
			errs = append(errs, inconsistency{field: field, event: e})
		}
	}
	checkRelation := func(field string, rel EventMap) {
		for src, targets := range rel {
			checkEvent(field, src)
			for tgt := range targets {
				checkEvent(field, tgt)
			}
		}
	}

	checkRelation("conditionsFor", g.ConditionsFor)
	checkRelation("milestonesFor", g.MilestonesFor)
	checkRelation("responseTo", g.ResponseTo)
	checkRelation("excludesTo", g.ExcludesTo)
	checkRelation("includesTo", g.IncludesTo)

	for e := range g.LabelMap {
		checkEvent("labelMap", e)
	}
	for e := range g.RoleMap {
		checkEvent("roleMap", e)
	}
	for e := range g.Marking.Executed {
		checkEvent("marking.executed", e)
	}
	for e := range g.Marking.Included {
		checkEvent("marking.included", e)
	}
	for e := range g.Marking.Pending {
		checkEvent("marking.pending", e)
	}
	for e := range g.SubProcessMap {
		checkEvent("subProcessMap", e)
	}

	return errs
}

// SelfExcluding wires e to exclude itself on execution, the relation shape
// the BPMN-to-DCR converter's `_create_self_exclusion` step uses to mark a
// non-repeatable task: once it fires, it can never fire again without
// first being re-included by some other event.
func SelfExcluding(excludesTo EventMap, e Event) {
	excludesTo.Add(e, e)
}

// SequenceFlow wires the includesTo/responseTo pair the converter's
// `_create_sequence_flow_relations` step uses for a plain BPMN sequence
// flow: firing from always makes to both included and pending, so to must
// eventually fire too.
func SequenceFlow(includesTo, responseTo EventMap, from, to Event) {
	includesTo.Add(from, to)
	responseTo.Add(from, to)
}
