package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExitCode_UnwrapsExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad flag")
	require.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode_DefaultsToFailureForPlainError(t *testing.T) {
	require.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
}

func TestWrapExitError_PreservesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapExitError(ExitCommandError, "loading graph", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "loading graph")
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}
	require.NoError(t, f.Success(map[string]any{"events": 2}))
	require.Contains(t, buf.String(), `"status":"ok"`)
	require.Contains(t, buf.String(), `"events":2`)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	require.NoError(t, f.Error("E201", "event undeclared"))
	require.Contains(t, buf.String(), "E201")
	require.Contains(t, buf.String(), "event undeclared")
}

func TestOutputFormatter_VerboseLogSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}
	f.VerboseLog("should not appear")
	require.Empty(t, buf.String())
}

func TestOutputFormatter_VerboseLogWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf, Verbose: true}
	f.VerboseLog("compiled %d events", 3)
	require.Contains(t, buf.String(), "compiled 3 events")
}
