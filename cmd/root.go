// Package cmd wires the cobra command tree for the assetsensor CLI.
package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command. out/errOut let tests capture output
// without routing through the process's real stdout/stderr.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assetsensor",
		Short:         "Decide which derived assets need recomputation and emit a run request.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(NewTickCmd(out))
	rootCmd.AddCommand(NewDescribeCmd(out))
	return rootCmd
}
