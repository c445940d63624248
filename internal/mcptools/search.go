package mcptools

import (
	"context"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultLimit = 10

func toResults(entries []entry.Entry, now time.Time) []EntryResult {
	results := make([]EntryResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, EntryResult{
			ID:       e.ID,
			Date:     e.Date,
			Relative: datemath.RelativeLabelString(e.Date, now),
			Mood:     e.Mood,
			Preview:  e.Preview(100),
		})
	}
	return results
}

// SearchHandler returns the handler function for the search_entries MCP tool.
func SearchHandler(store storage.Storage, now func() time.Time) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = defaultLimit
		}

		entries, err := store.List(storage.ListOptions{Mood: input.Mood})
		if err != nil {
			return nil, SearchOutput{}, err
		}

		query := strings.ToLower(strings.TrimSpace(input.Query))
		var matched []entry.Entry
		for _, e := range entries {
			haystack := strings.ToLower(e.Title + "\n" + e.PlainText())
			if strings.Contains(haystack, query) {
				matched = append(matched, e)
				if len(matched) >= limit {
					break
				}
			}
		}

		return nil, SearchOutput{Entries: toResults(matched, now())}, nil
	}
}
