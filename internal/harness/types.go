package harness

import "fmt"

// Scenario defines a single conformance test case: a graph to compile, a
// trace to run against it under one of the three conformance operations,
// and the outcome expected.
type Scenario struct {
	// Name uniquely identifies this scenario, and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// GraphDir is the directory of CUE graph sources to compile, relative
	// to the scenario file's location.
	GraphDir string `yaml:"graph_dir"`

	// Kind selects which conformance operation to run: "replay",
	// "quantify", or "align".
	Kind string `yaml:"kind"`

	// Trace is the role-trace driving replay/quantify scenarios.
	Trace []RoleStepYAML `yaml:"trace,omitempty"`

	// LabelTrace is the label-only trace driving align scenarios.
	LabelTrace []string `yaml:"label_trace,omitempty"`

	// Expect declares the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// RoleStepYAML mirrors ir.RoleStep with YAML tags.
type RoleStepYAML struct {
	Role     string `yaml:"role"`
	Activity string `yaml:"activity"`
}

// Expectation is the scenario's expected outcome. Only the field relevant
// to the scenario's Kind is populated.
type Expectation struct {
	Accepted        *bool    `yaml:"accepted,omitempty"`
	TotalViolations *float64 `yaml:"total_violations,omitempty"`
	Cost            *float64 `yaml:"cost,omitempty"`
	Infeasible      *bool    `yaml:"infeasible,omitempty"`
}

// Result is the outcome of running a Scenario.
type Result struct {
	Pass   bool
	Errors []string
	Detail map[string]any
}

func newResult() *Result {
	return &Result{Pass: true, Detail: make(map[string]any)}
}

func (r *Result) addError(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
