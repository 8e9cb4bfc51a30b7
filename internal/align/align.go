package align

import (
	"github.com/dcrcore/dcr/internal/engine"
	"github.com/dcrcore/dcr/internal/ir"
)

// defaultBoundDepth caps the nested empty-trace alignment used only to
// compute an initial upper bound when the caller supplies no finite
// depthLimit. The two-level memoisation cache already prevents revisiting
// a (remainingTraceLen, markingKey) state at an equal-or-worse cost, but
// that cache is empty on first entry, so this one recursive definition -
// unlike the main search - needs its own termination bound before any
// cache entries exist. It is a practical safeguard, not a contractual
// bound: it never changes which alignment is returned, only how the
// initial maxCost heuristic is computed.
const defaultBoundDepth = 64

// Align computes a minimum-cost alignment of trace against g's current
// marking, per §4.4. context is the set of labels forbidden to re-fire
// during the reachability oracle's pruning pass (§4.4.1) - typically
// empty at the top level. depthLimit <= 0 means unbounded search depth.
func Align(trace ir.Trace, g *ir.Graph, context map[ir.Label]struct{}, costFun CostFunc, depthLimit int, pruning bool) ir.Alignment {
	a := &aligner{
		g:          g,
		costFun:    costFun,
		depthLimit: depthLimit,
		pruning:    pruning,
		context:    context,
		cache:      make(map[int]map[string]float64),
	}
	a.maxCost = a.initialUpperBound(trace)

	cost, events := a.search(trace, 0, 0)
	if cost >= ir.InfCost {
		return ir.Alignment{Cost: ir.InfCost}
	}
	return ir.Alignment{Cost: cost, Trace: events}
}

type aligner struct {
	g          *ir.Graph
	costFun    CostFunc
	depthLimit int
	pruning    bool
	context    map[ir.Label]struct{}
	maxCost    float64
	cache      map[int]map[string]float64
}

// initialUpperBound is maxCost = depthLimit if finite, else the cost of
// skipping every trace token plus the cost of aligning the empty trace
// from the current marking (§4.4).
func (a *aligner) initialUpperBound(trace ir.Trace) float64 {
	if a.depthLimit > 0 {
		return float64(a.depthLimit)
	}

	sum := 0.0
	for _, t := range trace {
		sum += a.costFun(TraceSkip, string(t))
	}
	sum += a.emptyTraceUpperBound()
	return sum
}

// emptyTraceUpperBound aligns the empty trace from g's current marking
// using a separate, depth-bounded aligner instance, purely to seed the
// main search's maxCost.
func (a *aligner) emptyTraceUpperBound() float64 {
	inner := &aligner{
		g:          a.g,
		costFun:    a.costFun,
		depthLimit: defaultBoundDepth,
		pruning:    a.pruning,
		context:    a.context,
		cache:      make(map[int]map[string]float64),
	}
	inner.maxCost = float64(defaultBoundDepth)

	var cost float64
	_ = engine.WithScratchMarking(a.g, func() error {
		cost, _ = inner.search(nil, 0, 0)
		return nil
	})
	if cost >= ir.InfCost {
		return float64(defaultBoundDepth)
	}
	return cost
}

// search is the depth-first branch-and-bound worker. It returns the
// additional cost incurred from this point to an accepting marking with
// trace fully consumed (ir.InfCost if none found within maxCost/depthLimit),
// and the events fired along the way.
func (a *aligner) search(trace ir.Trace, curCost float64, curDepth int) (float64, []ir.Event) {
	// Checked before the cost/depth bounds below: a branch that lands
	// exactly on the current maxCost (which initialUpperBound seeds with
	// an achievable value) still witnesses a valid alignment and must be
	// allowed to confirm acceptance, not be pruned a step early. Likewise
	// reaching acceptance with the trace exhausted needs no further move,
	// so it is never subject to the depth limit either.
	if len(trace) == 0 && engine.IsAccepting(a.g) {
		if curCost < a.maxCost {
			a.maxCost = curCost
		}
		return 0, nil
	}
	if curCost >= a.maxCost {
		return ir.InfCost, nil
	}
	if a.depthLimit > 0 && curDepth >= a.depthLimit {
		return ir.InfCost, nil
	}

	if !a.enterState(len(trace), a.g.Marking.Key(), curCost) {
		return ir.InfCost, nil
	}

	bestCost := ir.InfCost
	var bestEvents []ir.Event

	// 1. Consume.
	if len(trace) > 0 {
		head, rest := trace[0], trace[1:]
		for _, e := range a.g.LabelMapInv[head].Sorted() {
			if !engine.IsEnabled(e, a.g) {
				continue
			}
			moveCost := a.costFun(Consume, string(e))
			_ = engine.WithScratchMarking(a.g, func() error {
				engine.Execute(e, a.g)
				subCost, subEvents := a.search(rest, curCost+moveCost, curDepth+1)
				if subCost < ir.InfCost {
					total := moveCost + subCost
					if total < bestCost {
						bestCost = total
						bestEvents = prepend(e, subEvents)
					}
				}
				return nil
			})
		}
	}

	// 2. Trace-skip.
	if len(trace) > 0 {
		head, rest := trace[0], trace[1:]
		moveCost := a.costFun(TraceSkip, string(head))
		subCost, subEvents := a.search(rest, curCost+moveCost, curDepth+1)
		if subCost < ir.InfCost {
			total := moveCost + subCost
			if total < bestCost {
				bestCost = total
				bestEvents = subEvents
			}
		}
	}

	// 3. Reachability pruning: only while no finite maxCost has been
	// established yet, and only guards the model-skip pass below.
	if a.pruning && a.maxCost >= ir.InfCost && !reachable(a.g, a.context, trace) {
		return bestCost, bestEvents
	}

	// 4. Model-skip.
	for _, e := range engine.GetEnabled(a.g).Sorted() {
		moveCost := a.costFun(ModelSkip, string(e))
		_ = engine.WithScratchMarking(a.g, func() error {
			engine.Execute(e, a.g)
			subCost, subEvents := a.search(trace, curCost+moveCost, curDepth+1)
			if subCost < ir.InfCost {
				total := moveCost + subCost
				if total < bestCost {
					bestCost = total
					bestEvents = prepend(e, subEvents)
				}
			}
			return nil
		})
	}

	return bestCost, bestEvents
}

// enterState implements the two-level memoisation cache: a state
// (remainingTraceLen, markingKey) re-entered at cost >= the best cost it
// was previously entered at is abandoned immediately, since that cheaper
// or equal path already explored every continuation from here.
func (a *aligner) enterState(remaining int, markingKey string, curCost float64) bool {
	row, ok := a.cache[remaining]
	if !ok {
		row = make(map[string]float64)
		a.cache[remaining] = row
	}
	if best, ok := row[markingKey]; ok && curCost >= best {
		return false
	}
	row[markingKey] = curCost
	return true
}

func prepend(e ir.Event, rest []ir.Event) []ir.Event {
	out := make([]ir.Event, 0, len(rest)+1)
	out = append(out, e)
	out = append(out, rest...)
	return out
}
