package ir

// RoleStep is one (role, activity) pair in an observed RoleTrace.
type RoleStep struct {
	Role     Role
	Activity Label
}

// RoleTrace is an ordered, finite sequence of (role, activity) pairs, as
// replayed or quantified by the conformance components.
type RoleTrace []RoleStep

// Trace is an ordered, finite sequence of Labels, as consumed by the
// aligner (which does not need role information - a move is chosen purely
// by label match plus enabledness).
type Trace []Label
