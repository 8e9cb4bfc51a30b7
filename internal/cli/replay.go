package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/replay"
)

// ReplayOptions holds flags specific to `dcr replay`.
type ReplayOptions struct {
	*RootOptions
	LogPath string
}

// NewReplayCommand builds `dcr replay <graph-dir> <trace-file>`.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "replay <graph-dir> <trace-file>",
		Short:         "Replay a role-trace, reporting whether it corresponds to an accepting run",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.LogPath, "log", "", "persist the outcome to a SQLite run log at this path")
	return cmd
}

func runReplay(opts *ReplayOptions, graphDir, traceFile string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	g, err := LoadGraph(graphDir)
	if err != nil {
		return err
	}
	trace, err := LoadRoleTrace(traceFile)
	if err != nil {
		return err
	}

	accepted := replay.ReplayTrace(g, trace)

	if opts.LogPath != "" {
		if err := logReplayRun(context.Background(), opts.LogPath, g, trace, accepted); err != nil {
			return WrapExitError(ExitCommandError, "writing run log", err)
		}
	}

	formatter.Success(map[string]any{"accepted": accepted})

	if !accepted {
		return NewExitError(ExitFailure, "trace does not correspond to an accepting run")
	}
	return nil
}
