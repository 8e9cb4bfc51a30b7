package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCLI_Test_SeedScenarios exercises dcr test against the seed scenario
// fixtures checked into the repository under scenarios/, covering each of
// the conformance properties: response, condition, milestone, self-loop
// include/exclude, trace-skip and model-skip alignment, and violation
// counting.
func TestCLI_Test_SeedScenarios(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "test", "../../scenarios")
	require.NoError(t, err)
	require.Contains(t, out, `"failed":0`)
}

func TestCLI_Test_FilterSelectsSubset(t *testing.T) {
	out, err := runCLI(t, "--format", "json", "test", "../../scenarios", "--filter", "milestone")
	require.NoError(t, err)
	require.Contains(t, out, `"total":2`)
	require.Contains(t, out, `"failed":0`)
}

func TestCLI_Test_MissingScenariosDirIsCommandError(t *testing.T) {
	_, err := runCLI(t, "test", "/no/such/dir")
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}
