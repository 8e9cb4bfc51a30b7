package cli

import (
	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/compiler"
)

// NewCompileCommand builds `dcr compile <graph-dir>`.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "compile <graph-dir>",
		Short:         "Compile a CUE graph source into its IR summary",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCompile(rootOpts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

	g, errs := compiler.CompileGraph(dir)
	if len(errs) > 0 {
		for _, e := range errs {
			formatter.Error(e.Code, e.Error())
		}
		return NewExitError(ExitCommandError, "graph compilation failed")
	}

	formatter.VerboseLog("compiled %d event(s)", g.Events.Len())

	labels := make([]string, 0, len(g.Labels))
	for l := range g.Labels {
		labels = append(labels, string(l))
	}

	return formatter.Success(map[string]any{
		"events": g.Events.Sorted(),
		"labels": labels,
	})
}
