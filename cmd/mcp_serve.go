package cmd

import (
	"github.com/chris-regnier/moodctl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the journal
over stdio transport, so MCP clients can read and record moods.

Available tools:
  - search_entries: text search over titles and paragraphs
  - filter_entries: entries by date range and mood
  - month_calendar: moods per day of a month
  - render_entry:   an entry with its [PHOTO:N] markers resolved
  - create_entry:   record a new entry
  - add_photo:      attach a photo and get its marker

Example client config:
  {
    "mcpServers": {
      "moodctl": {
        "command": "/path/to/moodctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	server := mcptools.CreateMCPServer(store, mcptools.Options{
		Version:   version,
		MaxPerDay: appConfig.Calendar.MaxPerDay,
		Now:       now,
	})

	// stdout carries the protocol; the logger writes to stderr
	log.Info("starting MCP server",
		zap.String("transport", "stdio"),
		zap.String("backend", appConfig.Storage),
		zap.String("data_dir", appConfig.DataDir))

	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
