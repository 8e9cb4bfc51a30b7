package cli

import (
	"github.com/spf13/cobra"

	"github.com/dcrcore/dcr/internal/compiler"
)

// NewValidateCommand builds `dcr validate <graph-dir>`: compiles the graph
// and reports success or every structural error, without emitting a
// compiled summary.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <graph-dir>",
		Short:         "Validate a CUE graph source without compiling output",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: rootOpts.Verbose}

	_, errs := compiler.CompileGraph(dir)
	if len(errs) > 0 {
		for _, e := range errs {
			formatter.Error(e.Code, e.Error())
		}
		return NewExitError(ExitCommandError, "graph is invalid")
	}

	return formatter.Success("graph is valid")
}
