// Package printer renders tick results for the describe/tick CLI
// commands, using github.com/aquasecurity/table for the tabular output.
package printer

import (
	"fmt"
	"io"

	"github.com/aquasecurity/table"

	"github.com/hashmap-kz/assetsensor/internal/asset"
	"github.com/hashmap-kz/assetsensor/internal/sensor"
)

// RenderTick writes a human-readable summary of one TickResult to w: the
// launched run (if any), then a table of every monitored asset's outcome.
func RenderTick(w io.Writer, result sensor.TickResult) {
	if result.Run != nil {
		fmt.Fprintf(w, "run requested: run_key=%s\n", result.Run.RunKey)
		for _, k := range result.Run.Selection {
			fmt.Fprintf(w, "  launch: %s\n", k.String())
		}
	} else {
		fmt.Fprintln(w, "no run requested")
	}

	t := table.New(w)
	t.SetHeaders("Asset", "Status", "Cursor", "Reason")

	skipped := make(map[asset.Key]string, len(result.SkipReasons))
	for _, r := range result.SkipReasons {
		skipped[r.Asset] = r.Reason
	}

	for _, k := range result.TopoOrder {
		status := "launched"
		reason := ""
		if r, ok := skipped[k]; ok {
			status = "skipped"
			reason = r
		}
		t.AddRow(k.String(), status, fmt.Sprintf("%g", result.NextCursor.Get(k)), reason)
	}
	t.Render()
}
