// Package align implements the trace aligner (C4): the minimum-cost
// alignment of an observed label trace against a graph's current marking,
// via depth-first branch-and-bound search over consume, trace-skip, and
// model-skip moves.
//
// Unlike replay and quantification, the aligner never descends into a
// graph's SubProcessMap - it operates on a single, already-flattened
// *ir.Graph. This is a deliberate, spec-preserved choice: see DESIGN.md.
package align
