package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const onboardingGraph = `
graph: onboarding: {
	event: A: { label: "Register", role: "applicant" }
	event: B: { label: "Approve",  role: "reviewer" }

	condition: [["A", "B"]]
	response:  [["A", "B"]]

	marking: {
		included: ["A", "B"]
	}
}
`

func writeGraphFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.cue")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return dir
}

func TestCompileGraph_Valid(t *testing.T) {
	dir := writeGraphFile(t, onboardingGraph)

	g, errs := CompileGraph(dir)
	require.Empty(t, errs)
	require.NotNil(t, g)
	require.Equal(t, 2, g.Events.Len())
	require.True(t, g.Marking.Included.Contains("A"))
	require.True(t, g.Marking.Included.Contains("B"))
}

func TestCompileGraph_UndeclaredEventInRelation(t *testing.T) {
	dir := writeGraphFile(t, `
graph: bad: {
	event: A: { label: "Register", role: "applicant" }
	condition: [["A", "Ghost"]]
}
`)

	g, errs := CompileGraph(dir)
	require.Nil(t, g)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Code == ErrEventUndeclared {
			found = true
		}
	}
	require.True(t, found, "expected an %s error, got %+v", ErrEventUndeclared, errs)
}

func TestCompileGraph_MissingRole(t *testing.T) {
	dir := writeGraphFile(t, `
graph: bad: {
	event: A: { label: "Register" }
}
`)

	g, errs := CompileGraph(dir)
	require.Nil(t, g)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Code == ErrMissingRole {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileGraph_NoGraphBlock(t *testing.T) {
	dir := writeGraphFile(t, `other: { foo: "bar" }`)

	g, errs := CompileGraph(dir)
	require.Nil(t, g)
	require.Len(t, errs, 1)
	require.Equal(t, ErrGraphNotFound, errs[0].Code)
}
