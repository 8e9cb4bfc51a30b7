package ir

import "math"

// InfCost is the cost of an infeasible or budget-exhausted alignment
// search. It is never raised as an error - §7 requires every failure mode
// to be a value.
const InfCost = math.MaxFloat64

// Alignment is the result of aligning an observed Trace against a Graph: a
// minimum-cost sequence of consume/model-skip moves, or {InfCost, nil} if
// no alignment was found within the search's cost/depth budget.
type Alignment struct {
	Cost  float64
	Trace []Event
}

// IsInfeasible reports whether the alignment represents "no alignment
// within the bound", per §4.4.2.
func (a Alignment) IsInfeasible() bool {
	return a.Cost >= InfCost
}
