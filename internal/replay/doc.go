// Package replay implements the two halves of the DCR conformance
// component: ReplayTrace (does a role-trace correspond to some accepting
// run?) and QuantifyViolations (how far does it deviate, if not?).
//
// Both walk a RoleTrace recursively, snapshotting and restoring g's
// marking around each speculative execution via engine.WithScratchMarking,
// and both honour the open-world principle: an activity label the graph
// does not know about is skipped, never rejected.
package replay
