package align

// MoveKind identifies which of the aligner's three move types a CostFunc is
// being asked to price.
type MoveKind int

const (
	// Consume fires an enabled event matching the head of the trace,
	// consuming one trace token.
	Consume MoveKind = iota
	// TraceSkip drops one trace token unmatched.
	TraceSkip
	// ModelSkip fires an enabled event without consuming a trace token.
	ModelSkip
)

// CostFunc prices a move. For Consume and ModelSkip, subject is the string
// form of the ir.Event that fires; for TraceSkip, it is the string form of
// the ir.Label being dropped. Costs must be non-negative.
type CostFunc func(kind MoveKind, subject string) float64

// UnitCost is the simplest CostFunc: every move costs 1, the standard
// choice for plain edit-distance-style alignment.
func UnitCost(MoveKind, string) float64 {
	return 1
}
