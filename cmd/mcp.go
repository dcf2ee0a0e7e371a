package cmd

import (
	"github.com/huangsam/thermolog/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Thermolog MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents read reports, records
and chart series, check values against zone ranges and list the zones.

The server only reads; submissions stay with the submit command.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
