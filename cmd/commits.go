package cmd

import (
	"errors"

	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// commitsCmd lists the commits behind one heatmap day.
var commitsCmd = &cobra.Command{
	Use:   "commits [root...]",
	Short: "List the commits behind one calendar day.",
	Long: `Show the individual commits that make up a single day cell of the
heatmap, under the same filters the heatmap itself uses.

Examples:
  # What happened on a specific day
  calheat commits --date 2026-08-14

  # Only your own commits on that day
  calheat commits --date 2026-08-14 --user current

  # Machine-readable output
  calheat commits --date 2026-08-14 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		date := viper.GetString("date")
		if date == "" {
			contract.LogFatal("Cannot list commits", errors.New("--date is required (YYYY-MM-DD)"))
		}
		records, err := engine.GetCommitsForDate(rootCtx, date, cfg.FilterSelection())
		if err != nil {
			contract.LogFatal("Cannot list commits", err)
		}
		if err := outwriter.NewOutWriter().WriteCommits(records, cfg); err != nil {
			contract.LogFatal("Cannot write commits", err)
		}
	},
}
