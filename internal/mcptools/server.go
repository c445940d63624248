package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the MCP server.
type Options struct {
	Version   string
	MaxPerDay int
	Now       func() time.Time
}

// NewMoodMCPServer creates an in-memory MCP server exposing journal tools.
// Returns the server and a client transport for connecting to it.
func NewMoodMCPServer(store storage.Storage, opts Options) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(store, opts)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered journal tools.
func CreateMCPServer(store storage.Storage, opts Options) *mcp.Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moodctl",
		Version: opts.Version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entries",
		Description: "Search mood entries by title and paragraph text",
	}, SearchHandler(store, now))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_entries",
		Description: "Filter mood entries by date range and mood",
	}, FilterHandler(store, now))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "month_calendar",
		Description: "Moods recorded on each day of a month",
	}, MonthHandler(store, opts.MaxPerDay))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_entry",
		Description: "Render an entry with its photo markers resolved",
	}, RenderEntryHandler(store, now))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Record a new mood entry",
	}, CreateEntryHandler(store, now))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_photo",
		Description: "Attach a photo to an entry and return its [PHOTO:N] marker",
	}, AddPhotoHandler(store, now))

	return server
}
