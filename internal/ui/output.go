package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/render"
	"github.com/gosuri/uitable"
)

const timestampLayout = "2006-01-02 15:04"

// FormatEntryCreated formats a creation confirmation message.
func FormatEntryCreated(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Created entry %s %s (%s)\n", e.ID, e.Mood, datemath.FormatShortString(e.Date))
}

// FormatEntryUpdated formats an update confirmation message.
func FormatEntryUpdated(w io.Writer, e entry.Entry) {
	fmt.Fprintf(w, "Updated entry %s (%s)\n", e.ID, e.UpdatedAt.Local().Format(timestampLayout))
}

// FormatEntryDeleted formats a deletion confirmation message.
func FormatEntryDeleted(w io.Writer, id string) {
	fmt.Fprintf(w, "Deleted entry %s.\n", id)
}

// FormatNoChanges formats a "no changes" message.
func FormatNoChanges(w io.Writer, id string) {
	fmt.Fprintf(w, "No changes detected for entry %s.\n", id)
}

// EntryMarkdown resolves an entry's blocks against its photos and returns
// markdown with one block per paragraph.
func EntryMarkdown(e entry.Entry, photos []entry.Photo) string {
	parts := make([]string, 0, len(e.Content))
	for _, b := range e.Content {
		md := SegmentsToMarkdown(render.Render([]entry.Block{b}, photos))
		if strings.TrimSpace(md) != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n\n")
}

// FormatEntryFull formats a full entry display with metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, e entry.Entry, photos []entry.Photo, markdownStyle string, now time.Time) {
	fmt.Fprintf(w, "Entry: %s\n", e.ID)
	fmt.Fprintf(w, "Date: %s (%s)\n", datemath.FormatShortString(e.Date), datemath.RelativeLabelString(e.Date, now))
	fmt.Fprintf(w, "Mood: %s\n", e.Mood)
	if e.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", e.Title)
	}
	if len(photos) > 0 {
		fmt.Fprintf(w, "Photos: %d\n", len(photos))
	}
	fmt.Fprintf(w, "Modified: %s\n", e.UpdatedAt.Local().Format(timestampLayout))
	fmt.Fprintln(w)

	// Use a reasonable default width (80 chars) which will be adjusted by the pager if used
	rendered := RenderMarkdownWithStyle(EntryMarkdown(e, photos), 80, markdownStyle)
	fmt.Fprintln(w, rendered)
}

// FormatEntryList formats a list of entries as a table.
func FormatEntryList(w io.Writer, entries []entry.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No mood entries found.")
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Separator = "  "
	tbl.AddRow("ID", "DATE", "WHEN", "MOOD", "PREVIEW")
	for _, e := range entries {
		tbl.AddRow(e.ID, e.Date, datemath.RelativeLabelString(e.Date, now), e.Mood, e.Preview(60))
	}
	fmt.Fprintln(w, tbl)
}

// FormatPhotoList formats an entry's photos as a table.
func FormatPhotoList(w io.Writer, photos []entry.Photo) {
	if len(photos) == 0 {
		fmt.Fprintln(w, "No photos attached.")
		return
	}
	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.Separator = "  "
	tbl.AddRow("ID", "MARKER", "PATH", "CAPTION")
	for _, p := range photos {
		tbl.AddRow(p.ID, p.Marker(), p.StoragePath, p.Caption)
	}
	fmt.Fprintln(w, tbl)
}

// FormatTranscript prints a chat transcript, one turn per paragraph.
func FormatTranscript(w io.Writer, msgs []entry.Message) {
	first := true
	for _, m := range msgs {
		if m.Role == entry.RoleSystem {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintf(w, "%s: %s\n", m.Role, m.Content)
	}
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// EntrySummary is a JSON representation for list output.
type EntrySummary struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Relative  string    `json:"relative"`
	Mood      string    `json:"mood"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSummaries converts entries to summary format for JSON list output.
func ToSummaries(entries []entry.Entry, now time.Time) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			ID:        e.ID,
			Date:      e.Date,
			Relative:  datemath.RelativeLabelString(e.Date, now),
			Mood:      e.Mood,
			Preview:   e.Preview(60),
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		}
	}
	return summaries
}

// EntryDetail is the JSON representation of a shown entry.
type EntryDetail struct {
	entry.Entry
	Photos   []entry.Photo    `json:"photos"`
	Segments []render.Segment `json:"segments"`
}

// NewEntryDetail resolves e against photos for JSON output.
func NewEntryDetail(e entry.Entry, photos []entry.Photo) EntryDetail {
	if photos == nil {
		photos = []entry.Photo{}
	}
	segs := render.Render(e.Content, photos)
	if segs == nil {
		segs = []render.Segment{}
	}
	return EntryDetail{Entry: e, Photos: photos, Segments: segs}
}

// DeleteResult is a JSON representation for delete output.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
