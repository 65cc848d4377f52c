package cmd

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the calheat MCP server",
	Long:    `Launch an MCP server that allows AI agents to query commit activity heatmaps via standard tools.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := mcp.StartMCPServer(rootCtx, cfg, engine); err != nil {
			contract.LogFatal("MCP server failed", err)
		}
	},
}
