package cmd

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/outwriter"
	"github.com/spf13/cobra"
)

// usersCmd lists distinct commit authors.
var usersCmd = &cobra.Command{
	Use:   "users [root...]",
	Short: "List distinct commit authors across all discovered repositories.",
	Long: `Collect every author identity ("Name <email>") found in the history of
the discovered repositories. Useful for picking a value for --custom-user.

Examples:
  calheat users
  calheat users ~/work --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		users, err := engine.GetUserList(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list users", err)
		}
		if err := outwriter.NewOutWriter().WriteUsers(users, cfg); err != nil {
			contract.LogFatal("Cannot write users", err)
		}
	},
}
