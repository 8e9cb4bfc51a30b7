package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/align"
	"github.com/dcrcore/dcr/internal/ir"
)

// AlignOptions holds flags specific to `dcr align`.
type AlignOptions struct {
	*RootOptions
	DepthLimit int
	NoPruning  bool
	LogPath    string
}

// NewAlignCommand builds `dcr align <graph-dir> <trace-file>`.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "align <graph-dir> <trace-file>",
		Short:         "Compute a minimum-cost alignment of a label-trace against the graph",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.DepthLimit, "depth-limit", 0, "maximum search depth (0 = unbounded)")
	cmd.Flags().BoolVar(&opts.NoPruning, "no-pruning", false, "disable the reachability pruning pass")
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "persist the outcome to a SQLite run log at this path")

	return cmd
}

func runAlign(opts *AlignOptions, graphDir, traceFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	g, err := LoadGraph(graphDir)
	if err != nil {
		return err
	}
	trace, err := LoadLabelTrace(traceFile)
	if err != nil {
		return err
	}

	result := align.Align(trace, g, map[ir.Label]struct{}{}, align.UnitCost, opts.DepthLimit, !opts.NoPruning)

	if opts.LogPath != "" {
		if err := logAlignRun(context.Background(), opts.LogPath, g, trace, result); err != nil {
			return WrapExitError(ExitCommandError, "writing run log", err)
		}
	}

	if result.IsInfeasible() {
		formatter.Success(map[string]any{"infeasible": true})
		return NewExitError(ExitFailure, "no alignment found within the search bound")
	}

	events := make([]string, len(result.Trace))
	for i, e := range result.Trace {
		events[i] = string(e)
	}
	return formatter.Success(map[string]any{"cost": result.Cost, "trace": events})
}
