package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dcrcore/dcr/internal/align"
	"github.com/dcrcore/dcr/internal/compiler"
	"github.com/dcrcore/dcr/internal/ir"
	"github.com/dcrcore/dcr/internal/replay"
)

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &s, nil
}

// Run compiles the scenario's graph and executes its declared operation,
// comparing the outcome against its Expect clause. scenarioFile is used to
// resolve GraphDir relative to the scenario's own location.
func Run(scenario *Scenario, scenarioFile string) (*Result, error) {
	result := newResult()

	graphDir := scenario.GraphDir
	if !filepath.IsAbs(graphDir) {
		graphDir = filepath.Join(filepath.Dir(scenarioFile), graphDir)
	}

	g, errs := compiler.CompileGraph(graphDir)
	if len(errs) > 0 {
		for _, e := range errs {
			result.addError("compile: %s", e.Error())
		}
		return result, nil
	}

	switch scenario.Kind {
	case "replay":
		runReplayScenario(scenario, g, result)
	case "quantify":
		runQuantifyScenario(scenario, g, result)
	case "align":
		runAlignScenario(scenario, g, result)
	default:
		return nil, fmt.Errorf("scenario %s: unknown kind %q", scenario.Name, scenario.Kind)
	}

	return result, nil
}

func toRoleTrace(steps []RoleStepYAML) ir.RoleTrace {
	out := make(ir.RoleTrace, len(steps))
	for i, s := range steps {
		out[i] = ir.RoleStep{Role: ir.Role(s.Role), Activity: ir.Label(s.Activity)}
	}
	return out
}

func toLabelTrace(labels []string) ir.Trace {
	out := make(ir.Trace, len(labels))
	for i, l := range labels {
		out[i] = ir.Label(l)
	}
	return out
}

func runReplayScenario(scenario *Scenario, g *ir.Graph, result *Result) {
	accepted := replay.ReplayTrace(g, toRoleTrace(scenario.Trace))
	result.Detail["accepted"] = accepted

	if scenario.Expect.Accepted != nil && accepted != *scenario.Expect.Accepted {
		result.addError("expected accepted=%v, got %v", *scenario.Expect.Accepted, accepted)
	}
}

func runQuantifyScenario(scenario *Scenario, g *ir.Graph, result *Result) {
	report := replay.QuantifyViolations(g, toRoleTrace(scenario.Trace))
	result.Detail["total_violations"] = report.TotalViolations

	if scenario.Expect.TotalViolations != nil && report.TotalViolations != *scenario.Expect.TotalViolations {
		result.addError("expected total_violations=%v, got %v", *scenario.Expect.TotalViolations, report.TotalViolations)
	}
}

func runAlignScenario(scenario *Scenario, g *ir.Graph, result *Result) {
	alignment := align.Align(toLabelTrace(scenario.LabelTrace), g, map[ir.Label]struct{}{}, align.UnitCost, 0, true)
	result.Detail["infeasible"] = alignment.IsInfeasible()

	if alignment.IsInfeasible() {
		if scenario.Expect.Infeasible != nil && !*scenario.Expect.Infeasible {
			result.addError("expected a feasible alignment, got infeasible")
		}
		return
	}

	result.Detail["cost"] = alignment.Cost
	if scenario.Expect.Infeasible != nil && *scenario.Expect.Infeasible {
		result.addError("expected infeasible, got cost=%v", alignment.Cost)
	}
	if scenario.Expect.Cost != nil && alignment.Cost != *scenario.Expect.Cost {
		result.addError("expected cost=%v, got %v", *scenario.Expect.Cost, alignment.Cost)
	}
}
