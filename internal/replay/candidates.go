package replay

import "github.com/dcrcore/dcr/internal/ir"

// candidateEvents returns, in a stable sorted order, every event in g whose
// label and role match step. Both ReplayTrace and QuantifyViolations use
// this to resolve a (role, activity) observation to the set of events that
// could have produced it - possibly more than one, which is exactly the
// source of non-determinism these two searches resolve differently
// (disjunction for replay, minimal-violation branch for quantification).
func candidateEvents(g *ir.Graph, step ir.RoleStep) []ir.Event {
	var out []ir.Event
	for _, e := range g.LabelMapInv[step.Activity].Sorted() {
		if g.RoleMap[e] == step.Role {
			out = append(out, e)
		}
	}
	return out
}
