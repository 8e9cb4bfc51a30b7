package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcrcore/dcr/internal/ir"
)

func TestLoadRoleTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"role":"driver","activity":"go"},{"role":"driver","activity":"stop"}]`), 0o644))

	trace, err := LoadRoleTrace(path)
	require.NoError(t, err)
	require.Equal(t, ir.RoleTrace{
		{Role: "driver", Activity: "go"},
		{Role: "driver", Activity: "stop"},
	}, trace)
}

func TestLoadRoleTrace_MissingFile(t *testing.T) {
	_, err := LoadRoleTrace(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadRoleTrace_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	_, err := LoadRoleTrace(path)
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadLabelTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	require.NoError(t, os.WriteFile(path, []byte(`["go", "stop"]`), 0o644))

	trace, err := LoadLabelTrace(path)
	require.NoError(t, err)
	require.Equal(t, ir.Trace{"go", "stop"}, trace)
}

func TestLoadGraph_MissingDir(t *testing.T) {
	_, err := LoadGraph(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}
