package mcptools

// SearchInput is the input schema for the search_entries MCP tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"Text to search for in entry titles and paragraphs"`
	Mood  string `json:"mood,omitempty" jsonschema:"Only match entries with this mood glyph"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return"`
}

// SearchOutput is the output schema for the search_entries MCP tool.
type SearchOutput struct {
	Entries []EntryResult `json:"entries"`
}

// FilterInput is the input schema for the filter_entries MCP tool.
type FilterInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"ISO date upper bound (inclusive)"`
	Mood      string `json:"mood,omitempty" jsonschema:"Only return entries with this mood glyph"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

// FilterOutput is the output schema for the filter_entries MCP tool.
type FilterOutput struct {
	Entries []EntryResult `json:"entries"`
}

// EntryResult is the common output format for entry-related MCP tools.
type EntryResult struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Relative string `json:"relative"`
	Mood     string `json:"mood"`
	Preview  string `json:"preview"`
}

// MonthInput is the input schema for the month_calendar MCP tool.
type MonthInput struct {
	Month int `json:"month" jsonschema:"Month number, 1-12"`
	Year  int `json:"year" jsonschema:"Four-digit year"`
}

// MonthOutput is the output schema for the month_calendar MCP tool.
type MonthOutput struct {
	Month int        `json:"month"`
	Year  int        `json:"year"`
	Days  []DayMoods `json:"days"`
}

// DayMoods summarises one day of a month.
type DayMoods struct {
	Date     string   `json:"date"`
	Moods    []string `json:"moods"`
	Overflow int      `json:"overflow"`
	EntryIDs []string `json:"entry_ids"`
}

// RenderEntryInput is the input schema for the render_entry MCP tool.
type RenderEntryInput struct {
	ID string `json:"id" jsonschema:"Entry ID"`
}

// RenderEntryOutput is the output schema for the render_entry MCP tool.
type RenderEntryOutput struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Relative string          `json:"relative"`
	Mood     string          `json:"mood"`
	Title    string          `json:"title,omitempty"`
	Text     string          `json:"text"`
	Segments []SegmentResult `json:"segments"`
}

// SegmentResult is one rendered piece of an entry.
type SegmentResult struct {
	Kind        string `json:"kind"`
	Value       string `json:"value,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
	Caption     string `json:"caption,omitempty"`
	AltLabel    string `json:"alt_label,omitempty"`
	Label       string `json:"label,omitempty"`
}

// CreateEntryInput is the input schema for the create_entry MCP tool.
type CreateEntryInput struct {
	Date    string `json:"date,omitempty" jsonschema:"Entry date as YYYY-MM-DD; defaults to today"`
	Mood    string `json:"mood" jsonschema:"Mood glyph, e.g. an emoji"`
	Title   string `json:"title,omitempty" jsonschema:"Optional title"`
	Content string `json:"content" jsonschema:"Entry body; blank lines separate paragraphs, [PHOTO:N] references photo N"`
}

// CreateEntryOutput is the output schema for the create_entry MCP tool.
type CreateEntryOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Preview string `json:"preview"`
}

// AddPhotoInput is the input schema for the add_photo MCP tool.
type AddPhotoInput struct {
	EntryID     string `json:"entry_id" jsonschema:"Entry to attach the photo to"`
	StoragePath string `json:"storage_path" jsonschema:"Path or URL of the stored image"`
	Caption     string `json:"caption,omitempty" jsonschema:"Optional caption"`
}

// AddPhotoOutput is the output schema for the add_photo MCP tool.
type AddPhotoOutput struct {
	ID     string `json:"id"`
	Marker string `json:"marker"`
}
