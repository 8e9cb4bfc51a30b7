// Package engine implements the DCR execution kernel: IsEnabled, Execute,
// IsAccepting, and GetEnabled over a Graph's Marking.
//
// The kernel is single-threaded and synchronous (no operation suspends, no
// cancellation channel) - a Graph is treated as immutable for the duration
// of any call into this package; only its Marking is mutated, and only by
// Execute.
//
// # Scoped marking mutation
//
// Every recursive descent elsewhere in this codebase that mutates a
// Marking (replay's backtracking, the quantifier's per-step scoring, the
// aligner's branch-and-bound search) wraps the mutation in
// WithScratchMarking: it snapshots the prior marking on entry and restores
// it on every exit path, normal or early. This is the one mandatory
// resource-scoping discipline the core has; see WithScratchMarking's doc
// comment for the mechanism.
package engine
