package cmd

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/outwriter"
	"github.com/spf13/cobra"
)

// heatmapCmd renders the commit activity calendar.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap [root...]",
	Short: "Render a calendar heatmap of commit activity across your repositories.",
	Long: `Scan the given workspace roots for git repositories, aggregate their
commit history into per-day buckets and render the result as a
contribution-style calendar.

All aggregation happens locally against the repositories on disk; nothing
leaves your machine.

Examples:
  # Last year of activity under the current directory
  calheat heatmap

  # Multiple roots, merges included
  calheat heatmap ~/work ~/oss --merges

  # Only your own commits in the last quarter
  calheat heatmap --user current --range quarter

  # Lines changed instead of commit counts, in the fire palette
  calheat heatmap --metric lines --scheme fire

  # Custom range, recomputed from scratch
  calheat heatmap --range custom --start 2026-01-01 --end 2026-03-31 --refresh`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := engine.GetFilteredHeatmapData(rootCtx, cfg.FilterSelection(), cfg.ForceRefresh)
		if err != nil {
			contract.LogFatal("Cannot build heatmap", err)
		}
		if err := outwriter.NewOutWriter().WriteHeatmap(ds, cfg); err != nil {
			contract.LogFatal("Cannot write heatmap", err)
		}
	},
}
