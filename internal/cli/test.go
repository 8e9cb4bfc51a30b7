package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/harness"
)

// TestOptions holds flags for `dcr test`.
type TestOptions struct {
	*RootOptions
	Filter string
}

// ScenarioResult is one scenario's outcome, for CLI reporting.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// NewTestCommand builds `dcr test <scenarios-dir>`.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run YAML conformance scenarios",
		Long: `Run every *.yaml scenario file under scenarios-dir, compiling its
graph and checking its declared expectation.

Exit codes:
  0 - all scenarios passed
  1 - one or more scenarios failed
  2 - command error (invalid path, malformed scenario)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose name contains this substring")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	if info, err := os.Stat(scenariosDir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	var files []string
	err := filepath.Walk(scenariosDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "scanning scenarios directory", err)
	}

	var results []ScenarioResult
	passed, failed := 0, 0

	for _, f := range files {
		scenario, err := harness.LoadScenario(f)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading scenario "+f, err)
		}
		if opts.Filter != "" && !strings.Contains(scenario.Name, opts.Filter) {
			continue
		}

		result, err := harness.Run(scenario, f)
		if err != nil {
			return WrapExitError(ExitCommandError, "running scenario "+f, err)
		}

		sr := ScenarioResult{Name: scenario.Name, Pass: result.Pass, Errors: result.Errors}
		results = append(results, sr)
		if result.Pass {
			passed++
		} else {
			failed++
		}
		formatter.VerboseLog("%s: pass=%v", scenario.Name, result.Pass)
	}

	formatter.Success(map[string]any{
		"scenarios": results,
		"passed":    passed,
		"failed":    failed,
		"total":     passed + failed,
	})

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, passed+failed))
	}
	return nil
}
