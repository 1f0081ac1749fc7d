package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/hashmap-kz/assetsensor/internal/printer"
)

// NewDescribeCmd builds the "describe" subcommand: a read-only preview of
// what a tick would do, never writing the cursor file back. This has no
// equivalent upstream (the framework always ticks headlessly); it exists
// purely as an operator-facing dry run, exposing every state-changing
// decision through a plain command.
func NewDescribeCmd(out io.Writer) *cobra.Command {
	o := &tickOptions{}

	cmd := &cobra.Command{
		Use:   "describe -f FILE [-f FILE...]",
		Short: "Preview one reconciliation tick without persisting the cursor.",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, univ, log, cursorBlob, err := buildTick(o)
			if err != nil {
				return err
			}

			result, err := s.Tick(log, univ, cursorBlob)
			if err != nil {
				return err
			}

			printer.RenderTick(out, result)
			return nil
		},
	}

	o.registerFlags(cmd.Flags())
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("assets")
	return cmd
}
