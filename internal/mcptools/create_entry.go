package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateEntryHandler returns the handler function for the create_entry MCP tool.
func CreateEntryHandler(store storage.Storage, now func() time.Time) func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, CreateEntryOutput, error) {
		t := now()
		day := t
		if input.Date != "" {
			d, err := datemath.ParseDate(input.Date)
			if err != nil {
				return nil, CreateEntryOutput{}, err
			}
			day = d
		}

		// Create entry (validates content + generates ID)
		e, err := entry.New(day, input.Mood, input.Title, entry.ParseBlocks(input.Content), t)
		if err != nil {
			return nil, CreateEntryOutput{}, err
		}
		if err := store.Create(e); err != nil {
			return nil, CreateEntryOutput{}, err
		}

		return nil, CreateEntryOutput{
			ID:      e.ID,
			Date:    e.Date,
			Preview: e.Preview(200),
		}, nil
	}
}

// AddPhotoHandler returns the handler function for the add_photo MCP tool.
// The photo takes the lowest free position of its entry.
func AddPhotoHandler(store storage.Storage, now func() time.Time) func(ctx context.Context, req *mcp.CallToolRequest, input AddPhotoInput) (*mcp.CallToolResult, AddPhotoOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddPhotoInput) (*mcp.CallToolResult, AddPhotoOutput, error) {
		existing, err := store.ListPhotos(input.EntryID)
		if err != nil {
			return nil, AddPhotoOutput{}, err
		}
		p, err := entry.NewPhoto(input.EntryID, input.StoragePath, input.Caption, entry.NextPosition(existing), now())
		if err != nil {
			return nil, AddPhotoOutput{}, err
		}
		if err := store.AddPhoto(p); err != nil {
			return nil, AddPhotoOutput{}, err
		}
		return nil, AddPhotoOutput{ID: p.ID, Marker: p.Marker()}, nil
	}
}
