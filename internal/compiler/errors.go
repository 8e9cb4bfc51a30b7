package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Validation error codes (E200-E299), continuing the E1xx convention this
// codebase already uses for concept/sync compilation - graph compilation
// gets its own numeric range.
const (
	// Structural errors (E200-E209).
	ErrGraphNotFound     = "E200" // no graph { ... } block found
	ErrEventUndeclared   = "E201" // relation/role/marking references an undeclared event
	ErrDuplicateEvent    = "E202" // event name declared twice
	ErrMissingLabel      = "E203" // event missing required label field
	ErrMissingRole       = "E204" // event missing required role field
	ErrInvalidRelation   = "E205" // relation entry is not a 2-element [from, to] pair
	ErrInvalidMarkingSet = "E206" // marking field is not included/executed/pending

	// Load errors (E210-E219).
	ErrDirNotFound  = "E210"
	ErrNoCUEFiles   = "E211"
	ErrCUELoad      = "E212"
	ErrCUEBuild     = "E213"

	// IR construction errors (E220-E229).
	ErrGraphInconsistent = "E220" // ir.NewGraph rejected the assembled relations
)

// ValidationError is a single coded problem found while compiling a graph
// source, collected fail-slow (§7) so an author sees every problem from one
// compile pass rather than one at a time.
type ValidationError struct {
	Code    string
	Field   string
	Message string
	Pos     token.Pos
}

func (e ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: [%s] %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// formatCUEError flattens a cue/errors.Error chain into a single
// ValidationError carrying the first error's position, mirroring this
// codebase's existing compiler error formatting.
func formatCUEError(code string, field string, err error) ValidationError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return ValidationError{Code: code, Field: field, Message: err.Error()}
	}
	first := errs[0]
	var pos token.Pos
	if positions := errors.Positions(first); len(positions) > 0 {
		pos = positions[0]
	}
	return ValidationError{Code: code, Field: field, Message: first.Error(), Pos: pos}
}
