package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/replay"
)

// QuantifyOptions holds flags specific to `dcr quantify`.
type QuantifyOptions struct {
	*RootOptions
	LogPath string
}

// NewQuantifyCommand builds `dcr quantify <graph-dir> <trace-file>`.
func NewQuantifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuantifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "quantify <graph-dir> <trace-file>",
		Short:         "Quantify how far a role-trace deviates from conformance",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantify(opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "persist the outcome to a SQLite run log at this path")
	return cmd
}

func runQuantify(opts *QuantifyOptions, graphDir, traceFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	g, err := LoadGraph(graphDir)
	if err != nil {
		return err
	}
	trace, err := LoadRoleTrace(traceFile)
	if err != nil {
		return err
	}

	report := replay.QuantifyViolations(g, trace)

	if opts.LogPath != "" {
		if err := logQuantifyRun(context.Background(), opts.LogPath, g, trace, report); err != nil {
			return WrapExitError(ExitCommandError, "writing run log", err)
		}
	}

	formatter.Success(map[string]any{"total_violations": report.TotalViolations})

	if report.TotalViolations > 0 {
		return NewExitError(ExitFailure, "trace has conformance violations")
	}
	return nil
}
