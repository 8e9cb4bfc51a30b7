package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_ReplayAccepts(t *testing.T) {
	dir := t.TempDir()
	graphDir := filepath.Join(dir, "graph")
	require.NoError(t, os.MkdirAll(graphDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(graphDir, "graph.cue"), []byte(sequenceGraphCUE), 0o644))

	scenarioPath := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`
name: golden-replay-accepts
graph_dir: graph
kind: replay
trace:
  - role: driver
    activity: go
  - role: driver
    activity: stop
expect:
  accepted: true
`), 0o644))

	s, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	RunWithGolden(t, s, scenarioPath)
}
