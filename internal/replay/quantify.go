package replay

import (
	"math"

	"github.com/dcrcore/dcr/internal/engine"
	"github.com/dcrcore/dcr/internal/ir"
)

// ViolationReport is the result of QuantifyViolations: the total violation
// count of the minimal-violation resolution found, plus that resolution's
// per-relation violation and activation matrices.
type ViolationReport struct {
	TotalViolations float64
	Violations      ir.RelationSet
	Activations     ir.RelationSet
}

// QuantifyViolations replays roleTrace against g, and - unlike
// ReplayTrace - never rejects a candidate event for being disabled: firing
// a disabled event is exactly how a violation is observed. Across every
// non-deterministic resolution of ambiguous (role, activity) observations,
// it selects the branch minimising total violations, tie-breaking on
// first-found, and returns that branch's violation and activation
// matrices.
func QuantifyViolations(g *ir.Graph, roleTrace ir.RoleTrace) ViolationReport {
	viol, act, total := quantifyStep(g, roleTrace, ir.NewEventMap(), ir.NewEventMap())
	return ViolationReport{TotalViolations: total, Violations: viol, Activations: act}
}

// quantifyStep is the recursive worker. exSinceIn and exSinceEx are never
// mutated in place - every candidate branch clones them before executing,
// so siblings never observe each other's history. This is the "copy on
// descend" strategy the codebase uses instead of a manual restore, since
// unlike Marking these are plain maps with no dedicated scratch helper.
func quantifyStep(g *ir.Graph, trace ir.RoleTrace, exSinceIn, exSinceEx ir.EventMap) (ir.RelationSet, ir.RelationSet, float64) {
	if len(trace) == 0 {
		viol := endOfTraceViolations(g, exSinceEx)
		return viol, ir.NewRelationSet(), viol.Total()
	}

	step := trace[0]
	rest := trace[1:]

	scope, ok := g.Resolve(step.Activity)
	if !ok {
		return quantifyStep(g, rest, exSinceIn, exSinceEx)
	}

	candidates := candidateEvents(scope, step)
	if len(candidates) == 0 {
		return quantifyStep(g, rest, exSinceIn, exSinceEx)
	}

	var bestViol, bestAct ir.RelationSet
	bestTotal := math.Inf(1)

	for _, e := range candidates {
		localViol := stepViolations(e, scope, exSinceIn)
		localAct := stepActivations(e, scope)

		branchIn := exSinceIn.Clone()
		branchEx := exSinceEx.Clone()

		var recViol, recAct ir.RelationSet
		var recTotal float64
		_ = engine.WithScratchMarking(scope, func() error {
			engine.Execute(e, scope)
			updateAuxState(e, scope, branchIn, branchEx)
			recViol, recAct, recTotal = quantifyStep(g, rest, branchIn, branchEx)
			return nil
		})

		total := localViol.Total() + recTotal
		if total < bestTotal {
			bestTotal = total
			bestViol = localViol.Merge(recViol)
			bestAct = localAct.Merge(recAct)
		}
	}

	return bestViol, bestAct, bestTotal
}

// stepViolations scores the violations observable by firing e in scope's
// current marking, before e executes.
func stepViolations(e ir.Event, g *ir.Graph, exSinceIn ir.EventMap) ir.RelationSet {
	viol := ir.NewRelationSet()

	for _, c := range g.ConditionsFor.At(e).Sorted() {
		if g.Marking.Included.Contains(c) && !g.Marking.Executed.Contains(c) {
			viol[ir.RelationCondition].Inc(e, c)
		}
	}

	for _, m := range g.MilestonesFor.At(e).Sorted() {
		if g.Marking.Included.Contains(m) && g.Marking.Pending.Contains(m) {
			viol[ir.RelationMilestone].Inc(e, m)
		}
	}

	if !g.Marking.Included.Contains(e) {
		excluders := exSinceIn.At(e).Intersect(g.ExcludesFor(e))
		for _, o := range excluders.Sorted() {
			viol[ir.RelationExclude].Inc(o, e)
		}
	}

	return viol
}

// stepActivations records, for the event about to fire, which relation
// edges it is the source of - the "active at the moment of firing" matrix.
func stepActivations(e ir.Event, g *ir.Graph) ir.RelationSet {
	act := ir.NewRelationSet()
	record := func(kind ir.RelationKind, rel ir.EventMap) {
		for _, t := range rel.At(e).Sorted() {
			act[kind].Inc(e, t)
		}
	}
	record(ir.RelationCondition, g.ConditionsFor)
	record(ir.RelationMilestone, g.MilestonesFor)
	record(ir.RelationResponse, g.ResponseTo)
	record(ir.RelationExclude, g.ExcludesTo)
	record(ir.RelationInclude, g.IncludesTo)
	return act
}

// updateAuxState applies the per-event auxiliary state transition that
// follows execute(e, g):
//
//  1. Every event re-included by e (member of includesTo[e]) has its
//     since-included history reset - re-inclusion starts a fresh window.
//  2. Every event in the graph gains e in both its since-executed and
//     since-included history (e has now executed, so it becomes part of
//     everyone's "things that executed since my reference point").
//  3. e's own since-executed history resets to just {e} - executing e
//     resets the count for e itself.
func updateAuxState(e ir.Event, g *ir.Graph, exSinceIn, exSinceEx ir.EventMap) {
	for _, o := range g.IncludesTo.At(e).Sorted() {
		exSinceIn.Set(o, ir.NewEventSet())
	}
	for _, o := range g.Events.Sorted() {
		exSinceEx.Ensure(o).Add(e)
		exSinceIn.Ensure(o).Add(e)
	}
	exSinceEx.Set(e, ir.NewEventSet(e))
}

// endOfTraceViolations produces the response violations owed at the end of
// a trace: for every event still pending and included, every event that
// promised it a response but hasn't executed since is a violation.
func endOfTraceViolations(g *ir.Graph, exSinceEx ir.EventMap) ir.RelationSet {
	viol := ir.NewRelationSet()
	for _, e := range g.Marking.Pending.Intersect(g.Marking.Included).Sorted() {
		promisers := g.ResponseFor(e).Intersect(exSinceEx.At(e))
		for _, o := range promisers.Sorted() {
			viol[ir.RelationResponse].Inc(o, e)
		}
	}
	return viol
}
