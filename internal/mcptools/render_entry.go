package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/render"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RenderEntryHandler returns the handler function for the render_entry MCP
// tool. Photo markers resolve against the entry's own photos only.
func RenderEntryHandler(store storage.Storage, now func() time.Time) func(ctx context.Context, req *mcp.CallToolRequest, input RenderEntryInput) (*mcp.CallToolResult, RenderEntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RenderEntryInput) (*mcp.CallToolResult, RenderEntryOutput, error) {
		e, err := store.Get(input.ID)
		if err != nil {
			return nil, RenderEntryOutput{}, err
		}
		photos, err := store.ListPhotos(e.ID)
		if err != nil {
			return nil, RenderEntryOutput{}, err
		}

		segs := render.Render(e.Content, photos)
		out := RenderEntryOutput{
			ID:       e.ID,
			Date:     e.Date,
			Relative: datemath.RelativeLabelString(e.Date, now()),
			Mood:     e.Mood,
			Title:    e.Title,
			Text:     render.PlainText(segs),
			Segments: make([]SegmentResult, len(segs)),
		}
		for i, s := range segs {
			out.Segments[i] = SegmentResult{
				Kind:        string(s.Kind),
				Value:       s.Value,
				StoragePath: s.StoragePath,
				Caption:     s.Caption,
				AltLabel:    s.AltLabel,
				Label:       s.Label,
			}
		}
		return nil, out, nil
	}
}
