package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hashmap-kz/assetsensor/internal/printer"
)

// NewTickCmd builds the "tick" subcommand: run one reconciliation tick and,
// if it produced a run request, persist the advanced cursor.
func NewTickCmd(out io.Writer) *cobra.Command {
	o := &tickOptions{}

	cmd := &cobra.Command{
		Use:   "tick -f FILE [-f FILE...]",
		Short: "Run one reconciliation tick against an asset-definition graph.",
		Example: `
  # Evaluate every monitored asset once, against a fresh cursor
  assetsensor tick -f assets.yaml --events events.yaml

  # Persist the cursor between invocations
  assetsensor tick -f assets.yaml --events events.yaml --cursor-file cursor.state
`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, univ, log, cursorBlob, err := buildTick(o)
			if err != nil {
				return err
			}

			result, err := s.Tick(log, univ, cursorBlob)
			if err != nil {
				return err
			}

			if result.Run != nil && o.cursorFile != "" {
				if err := os.WriteFile(o.cursorFile, []byte(result.CursorBlob), 0o644); err != nil {
					return fmt.Errorf("writing --cursor-file: %w", err)
				}
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
