package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigsister-app/bigsister/cmd/bigsister/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start an MCP server over your sessions and journal",
	Long: `Start an MCP (Model Context Protocol) server that lets MCP clients
search your BigSister sessions and journal entries through the service.

Credentials come from the BIGSISTER_USERNAME and BIGSISTER_PIN
environment variables.

Example client configuration:
  {
    "mcpServers": {
      "bigsister": {
        "command": "bigsister",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := mcp.StartServer(cfg.ServerURL); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
