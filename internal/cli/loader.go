package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dcrcore/dcr/internal/compiler"
	"github.com/dcrcore/dcr/internal/ir"
)

// LoadGraph compiles the graph sources under dir, returning an
// ExitCommandError wrapping every ValidationError joined together on
// failure - compile errors are a command error, not a "the answer is no"
// result.
func LoadGraph(dir string) (*ir.Graph, error) {
	g, errs := compiler.CompileGraph(dir)
	if len(errs) > 0 {
		msg := fmt.Sprintf("%d graph compilation error(s)", len(errs))
		for _, e := range errs {
			msg += "\n  " + e.Error()
		}
		return nil, NewExitError(ExitCommandError, msg)
	}
	return g, nil
}

// roleStepJSON mirrors ir.RoleStep with JSON tags, since ir types
// deliberately carry no serialization tags of their own (§6's canonical
// JSON is hand-built, not struct-tag driven).
type roleStepJSON struct {
	Role     string `json:"role"`
	Activity string `json:"activity"`
}

// LoadRoleTrace reads a JSON array of {"role": ..., "activity": ...}
// objects from path, for use by replay and quantify.
func LoadRoleTrace(path string) (ir.RoleTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading trace file", err)
	}
	var steps []roleStepJSON
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing trace file", err)
	}
	out := make(ir.RoleTrace, len(steps))
	for i, s := range steps {
		out[i] = ir.RoleStep{Role: ir.Role(s.Role), Activity: ir.Label(s.Activity)}
	}
	return out, nil
}

// LoadLabelTrace reads a JSON array of activity-label strings from path,
// for use by align.
func LoadLabelTrace(path string) (ir.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading trace file", err)
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing trace file", err)
	}
	out := make(ir.Trace, len(labels))
	for i, l := range labels {
		out[i] = ir.Label(l)
	}
	return out, nil
}
