package mcptools

import (
	"context"

	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MonthHandler returns the handler function for the month_calendar MCP tool.
// Each day lists at most maxPerDay moods; the rest are counted in overflow.
func MonthHandler(store storage.Storage, maxPerDay int) func(ctx context.Context, req *mcp.CallToolRequest, input MonthInput) (*mcp.CallToolResult, MonthOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MonthInput) (*mcp.CallToolResult, MonthOutput, error) {
		cells, err := calendar.LoadMonth(store, input.Month, input.Year)
		if err != nil {
			return nil, MonthOutput{}, err
		}

		out := MonthOutput{Month: input.Month, Year: input.Year, Days: make([]DayMoods, len(cells))}
		for i, c := range cells {
			shown, overflow := calendar.Cap(c.Entries, maxPerDay)
			ids := make([]string, len(c.Entries))
			for j, e := range c.Entries {
				ids[j] = e.ID
			}
			out.Days[i] = DayMoods{
				Date:     c.Date.Format("2006-01-02"),
				Moods:    calendar.Moods(shown),
				Overflow: overflow,
				EntryIDs: ids,
			}
		}
		return nil, out, nil
	}
}
