package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/corkboard-app/corkboard/internal/logger"
	"github.com/corkboard-app/corkboard/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for LLM integration",
	Long: `Start a Model Context Protocol (MCP) server that lets LLMs work with your cards.

Tools:
- add_card: Create cards with text, back text, tags and position
- get_card: Retrieve a card by ID
- list_cards: List cards with pagination
- search_cards: Boolean search (AND/OR/NOT, phrases, wildcards, NEAR/N)
- update_card: Modify card text and tags
- move_card: Reposition a card on the canvas
- delete_card: Remove a card
- list_tags: View all tags with usage counts
- update_card_tags: Replace a card's tags

Resources:
- cards://recent: Most recently created cards
- cards://stats: Canvas statistics
- cards://config: Current configuration

To use with Claude Desktop, add this to your claude_desktop_config.json:
{
  "mcpServers": {
    "corkboard": {
      "command": "corkboard",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger.Info("Starting MCP server...")

	cardServer := mcp.NewCardServer(appConfig, cardRepo, searchEngine)
	mcpServer := cardServer.MCPServer()

	logger.Info("MCP server ready. Listening on stdio...")
	if err := server.ServeStdio(mcpServer); err != nil {
		if err.Error() != "EOF" {
			logger.Error("MCP server error: %v", err)
			return err
		}
	}

	logger.Info("MCP server shutting down")
	return nil
}
