package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes scenario and compares its Detail map against a
// golden file at testdata/golden/{scenario.Name}.golden. Run `go test
// ./internal/harness -update` to regenerate golden files after an
// intentional behavior change.
func RunWithGolden(t *testing.T, scenario *Scenario, scenarioFile string) {
	t.Helper()

	result, err := Run(scenario, scenarioFile)
	if err != nil {
		t.Fatalf("running scenario %s: %v", scenario.Name, err)
	}
	if !result.Pass {
		t.Errorf("scenario %s failed expectations: %v", scenario.Name, result.Errors)
	}

	detailJSON, err := json.MarshalIndent(result.Detail, "", "  ")
	if err != nil {
		t.Fatalf("marshaling scenario %s detail: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, detailJSON)
}
