// Package ir provides the canonical graph, marking, and trace types for the
// DCR (Dynamic Condition Response) engine.
//
// This package contains the data model only, plus canonical serialization.
// All other internal packages import ir; ir imports nothing internal. This
// ensures the IR remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Relations are immutable after Graph construction; only Marking evolves.
//   - Event sets use sorted, deterministic iteration everywhere so recursive
//     search (replay, quantification, alignment) is reproducible.
//   - Canonical JSON is the serialization behind content-addressed graph
//     hashes (GraphHash); the aligner's marking keys come from Marking.Key
//     instead.
package ir
