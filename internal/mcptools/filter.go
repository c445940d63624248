package mcptools

import (
	"context"
	"fmt"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilterHandler returns the handler function for the filter_entries MCP tool.
func FilterHandler(store storage.Storage, now func() time.Time) func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
		opts := storage.ListOptions{
			Mood:  input.Mood,
			Limit: input.Limit,
		}

		if input.StartDate != "" {
			t, err := datemath.ParseDate(input.StartDate)
			if err != nil {
				return nil, FilterOutput{}, fmt.Errorf("start_date: %w", err)
			}
			opts.StartDate = &t
		}
		if input.EndDate != "" {
			t, err := datemath.ParseDate(input.EndDate)
			if err != nil {
				return nil, FilterOutput{}, fmt.Errorf("end_date: %w", err)
			}
			opts.EndDate = &t
		}

		entries, err := store.List(opts)
		if err != nil {
			return nil, FilterOutput{}, err
		}

		return nil, FilterOutput{Entries: toResults(entries, now())}, nil
	}
}
