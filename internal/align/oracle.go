package align

import (
	"github.com/dcrcore/dcr/internal/engine"
	"github.com/dcrcore/dcr/internal/ir"
)

// oracle answers reachability questions against g's current marking: can
// some future run, never re-firing an event whose label is in context,
// make e fire (canBeExecuted) or fire-or-exclude e (canBeExecutedOrExcluded)?
// It is an over-approximation used only to prune the aligner's search - it
// may say "reachable" when nothing is, but never prunes a branch that
// could succeed.
type oracle struct {
	g       *ir.Graph
	context map[ir.Label]struct{}
}

// oracleState carries the three in-progress sets (excl, exec, incl) that
// the mutually recursive sub-oracles thread through their own recursion to
// guarantee termination when the graph's relations contain cycles. Each
// sub-oracle only ever tests and extends its own field; the other two ride
// along unchanged for its siblings to test.
type oracleState struct {
	excl, exec, incl ir.EventSet
}

func newOracleState() oracleState {
	return oracleState{excl: ir.NewEventSet(), exec: ir.NewEventSet(), incl: ir.NewEventSet()}
}

// canBeExecuted reports whether some future execution sequence ends with e
// firing.
func (o *oracle) canBeExecuted(e ir.Event) bool {
	return o.execRecur(e, e, newOracleState())
}

// canBeExecutedOrExcluded reports whether e can either fire or be removed
// from included, at some point in the future.
func (o *oracle) canBeExecutedOrExcluded(e ir.Event) bool {
	st := newOracleState()
	return o.execRecur(e, e, st) || o.exclRecur(e, e, st)
}

// execRecur is canBeExecutedRecur(e) per the specification's reachability
// oracle: enabled events trivially qualify; otherwise every blocking
// condition and milestone must itself be resolvable (executed or
// excluded), and an excluded e must additionally be includable.
func (o *oracle) execRecur(e, original ir.Event, st oracleState) bool {
	if st.exec.Contains(e) {
		return false
	}
	if _, blocked := o.context[o.g.LabelMap[e]]; blocked && e != original {
		return false
	}
	if engine.IsEnabled(e, o.g) {
		return true
	}

	next := st
	next.exec = st.exec.Clone()
	next.exec.Add(e)

	for _, c := range o.g.ConditionsFor.At(e).Sorted() {
		if o.g.Marking.Included.Contains(c) && !o.g.Marking.Executed.Contains(c) {
			if !(o.execRecur(c, original, next) || o.exclRecur(c, original, next)) {
				return false
			}
		}
	}
	for _, m := range o.g.MilestonesFor.At(e).Sorted() {
		if o.g.Marking.Included.Contains(m) && o.g.Marking.Pending.Contains(m) {
			if !(o.execRecur(m, original, next) || o.exclRecur(m, original, next)) {
				return false
			}
		}
	}
	if !o.g.Marking.Included.Contains(e) {
		return o.inclRecur(e, original, next)
	}
	return true
}

// exclRecur is canBeExcludedRecur(e): true iff some event that excludes e
// can itself be executed.
func (o *oracle) exclRecur(e, original ir.Event, st oracleState) bool {
	if st.excl.Contains(e) {
		return false
	}
	next := st
	next.excl = st.excl.Clone()
	next.excl.Add(e)

	for _, x := range o.g.ExcludesFor(e).Sorted() {
		if o.execRecur(x, original, next) {
			return true
		}
	}
	return false
}

// inclRecur is canBeIncludedRecur(e): true iff some event that includes e
// can itself be executed.
func (o *oracle) inclRecur(e, original ir.Event, st oracleState) bool {
	if st.incl.Contains(e) {
		return false
	}
	next := st
	next.incl = st.incl.Clone()
	next.incl.Add(e)

	for _, i := range o.g.IncludesFor(e).Sorted() {
		if o.execRecur(i, original, next) {
			return true
		}
	}
	return false
}

// reachable applies the oracle per §4.4.1's pruning rule: if trace is
// non-empty, at least one candidate event for its head label must be
// reachable; if empty, every pending-and-included event must be
// reachable (executed or excluded), or the marking can never accept.
func reachable(g *ir.Graph, context map[ir.Label]struct{}, trace ir.Trace) bool {
	o := &oracle{g: g, context: context}

	if len(trace) > 0 {
		for _, e := range g.LabelMapInv[trace[0]].Sorted() {
			if o.canBeExecuted(e) {
				return true
			}
		}
		return false
	}

	for _, p := range g.Marking.Pending.Intersect(g.Marking.Included).Sorted() {
		if !o.canBeExecutedOrExcluded(p) {
			return false
		}
	}
	return true
}
