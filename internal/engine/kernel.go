package engine

import "github.com/dcrcore/dcr/internal/ir"

// IsEnabled reports whether e can fire in g's current marking. It holds iff:
//
//  1. e is included.
//  2. Every c in conditionsFor[e] is either not included, or already
//     executed.
//  3. Every m in milestonesFor[e] is either not included, or not pending.
func IsEnabled(e ir.Event, g *ir.Graph) bool {
	if !g.Marking.Included.Contains(e) {
		return false
	}

	for _, c := range g.ConditionsFor.At(e).Sorted() {
		if g.Marking.Included.Contains(c) && !g.Marking.Executed.Contains(c) {
			return false
		}
	}

	for _, m := range g.MilestonesFor.At(e).Sorted() {
		if g.Marking.Included.Contains(m) && g.Marking.Pending.Contains(m) {
			return false
		}
	}

	return true
}

// GetEnabled returns every event in g satisfying IsEnabled.
func GetEnabled(g *ir.Graph) ir.EventSet {
	enabled := make(ir.EventSet)
	for _, e := range g.Events.Sorted() {
		if IsEnabled(e, g) {
			enabled.Add(e)
		}
	}
	return enabled
}

// Execute fires e, mutating g's marking:
//
//  1. If e conditions some other event (e is a member of the graph's
//     derived `conditions` filter), add e to executed. Events that
//     condition nothing are never written to executed - the write would be
//     observationally inert.
//  2. Remove e from pending.
//  3. Add every member of responseTo[e] to pending.
//  4. Remove every member of excludesTo[e] from included.
//  5. Add every member of includesTo[e] to included.
//
// Steps 4 and 5 run in this order so that, for the self-effecting case
// where e is a member of both excludesTo[e] and includesTo[e], inclusion
// wins - matching standard DCR semantics.
func Execute(e ir.Event, g *ir.Graph) {
	if g.Conditions().Contains(e) {
		g.Marking.Executed.Add(e)
	}
	g.Marking.Pending.Remove(e)

	for _, r := range g.ResponseTo.At(e).Sorted() {
		g.Marking.Pending.Add(r)
	}
	for _, x := range g.ExcludesTo.At(e).Sorted() {
		g.Marking.Included.Remove(x)
	}
	for _, i := range g.IncludesTo.At(e).Sorted() {
		g.Marking.Included.Add(i)
	}
}

// IsAccepting reports whether g's marking is accepting: no included event
// is pending.
func IsAccepting(g *ir.Graph) bool {
	return g.Marking.Pending.Intersect(g.Marking.Included).Len() == 0
}

// WithScratchMarking snapshots g's current marking, installs a deep copy,
// runs fn, and unconditionally restores the original marking afterward -
// on success, on early return, and on error. Every recursive branch of
// replay, quantification, and alignment that speculatively executes events
// wraps the attempt in this helper so sibling branches never observe each
// other's mutations.
func WithScratchMarking(g *ir.Graph, fn func() error) error {
	saved := g.Marking
	g.Marking = saved.Clone()
	defer func() { g.Marking = saved }()
	return fn()
}
