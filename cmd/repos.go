package cmd

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/outwriter"
	"github.com/spf13/cobra"
)

// reposCmd lists discovered repositories.
var reposCmd = &cobra.Command{
	Use:   "repos [root...]",
	Short: "List the git repositories found under the scan roots.",
	Long: `Walk the configured workspace roots and print every git repository the
heatmap would aggregate, after exclusions.

Examples:
  calheat repos
  calheat repos ~/work --exclude vendor/,archive/`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		repos, err := engine.DiscoverRepositories(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot discover repositories", err)
		}
		if err := outwriter.NewOutWriter().WriteRepos(repos, cfg); err != nil {
			contract.LogFatal("Cannot write repositories", err)
		}
	},
}
