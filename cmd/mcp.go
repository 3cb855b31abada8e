package cmd

import (
	"github.com/spf13/cobra"

	"github.com/COSC-499-W2025/capstone-project-team-7-sub002/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the projscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to scan archives, find duplicates, preview merges and analyze code quality via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; all setup output goes to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, snapshotManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
