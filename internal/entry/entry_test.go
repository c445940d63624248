package entry

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	idPattern := regexp.MustCompile(`^[a-z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if !idPattern.MatchString(id) {
			t.Errorf("NewID() = %q, want 8-char lowercase alphanumeric", id)
		}
		if seen[id] {
			t.Errorf("NewID() generated duplicate ID: %q", id)
		}
		seen[id] = true
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid", "2025-09-17", false},
		{"leap day", "2024-02-29", false},
		{"non leap day", "2023-02-29", true},
		{"month 13", "2025-13-01", true},
		{"datetime", "2025-09-17T10:00:00Z", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDate) {
				t.Errorf("expected ErrInvalidDate, got %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2025, 9, 17, 21, 30, 0, 0, time.UTC)
	day := time.Date(2025, 9, 16, 0, 0, 0, 0, time.Local)

	e, err := New(day, " 😊 ", "A title", []Block{Paragraph("hello")}, now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Date != "2025-09-16" {
		t.Errorf("date = %q, want 2025-09-16", e.Date)
	}
	if e.Mood != "😊" {
		t.Errorf("mood = %q, want trimmed glyph", e.Mood)
	}
	if !e.CreatedAt.Equal(now) || !e.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", e.CreatedAt, e.UpdatedAt, now)
	}
	if err := ValidateID(e.ID); err != nil {
		t.Errorf("ValidateID: %v", err)
	}

	if _, err := New(day, "", "", []Block{Paragraph("hello")}, now); !errors.Is(err, ErrEmptyMood) {
		t.Errorf("expected ErrEmptyMood, got %v", err)
	}
	if _, err := New(day, "😊", "", []Block{Paragraph("   ")}, now); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestEntryDay(t *testing.T) {
	e := Entry{Date: "2025-09-17"}
	d, err := e.Day()
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.September || d.Day() != 17 {
		t.Errorf("Day() = %v", d)
	}

	bad := Entry{Date: "not a date"}
	if _, err := bad.Day(); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestPreview(t *testing.T) {
	e := Entry{Content: []Block{
		Paragraph("first line"),
		Image("p.jpg", "beach"),
		Paragraph("second line that is rather long"),
	}}
	if got := e.Preview(200); got != "first line beach second line that is rather long" {
		t.Errorf("Preview = %q", got)
	}
	if got := e.Preview(13); got != "first line..." {
		t.Errorf("Preview(13) = %q", got)
	}

	e.Title = "Beach day"
	if got := e.Preview(60); got != "Beach day" {
		t.Errorf("Preview with title = %q", got)
	}
}

func TestPreviewTinyLimits(t *testing.T) {
	e := Entry{Title: "Beach day"}
	tests := []struct {
		max  int
		want string
	}{
		{3, "..."},
		{2, ".."},
		{1, "."},
		{0, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := e.Preview(tt.max); got != tt.want {
			t.Errorf("Preview(%d) = %q, want %q", tt.max, got, tt.want)
		}
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []Block
		wantErr error
	}{
		{"paragraph", []Block{Paragraph("hi")}, nil},
		{"image only", []Block{Image("a.jpg", "")}, nil},
		{"nil", nil, ErrEmptyContent},
		{"blank paragraph", []Block{Paragraph(" \n ")}, ErrEmptyContent},
		{"image without url", []Block{Image("", "cap")}, ErrEmptyImageURL},
		{"unknown type", []Block{{Type: "video", URL: "v.mp4"}}, ErrUnknownBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.blocks)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	text := "Morning walk [PHOTO:1]\nwith the dog\n\n\n![sunrise](photos/sun.jpg)\n\nEvening: tired"
	got := ParseBlocks(text)
	want := []Block{
		Paragraph("Morning walk [PHOTO:1]\nwith the dog"),
		Image("photos/sun.jpg", "sunrise"),
		Paragraph("Evening: tired"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBlocks() = %#v, want %#v", got, want)
	}

	if got := ParseBlocks("  \n\n "); got != nil {
		t.Errorf("ParseBlocks(blank) = %#v, want nil", got)
	}
}

func TestFormatBlocksRoundTrip(t *testing.T) {
	blocks := []Block{
		Paragraph("A [PHOTO:1] B"),
		Image("https://example.com/x.png", ""),
		Paragraph("line one\nline two"),
		Image("https://example.com/a_(1).png", "sunset"),
		Image("https://example.com/b.png", "[draft] beach"),
		Image("photos/my trip.jpg", `back\slash`),
	}
	text := FormatBlocks(blocks)
	if got := ParseBlocks(text); !reflect.DeepEqual(got, blocks) {
		t.Errorf("round trip = %#v, want %#v", got, blocks)
	}
}

func TestPhotoHelpers(t *testing.T) {
	now := time.Now()
	p, err := NewPhoto("abc12345", "photos/1.jpg", "", 2, now)
	if err != nil {
		t.Fatalf("NewPhoto: %v", err)
	}
	if p.Marker() != "[PHOTO:3]" {
		t.Errorf("Marker() = %q", p.Marker())
	}
	if _, err := NewPhoto("abc12345", " ", "", 0, now); !errors.Is(err, ErrInvalidPhoto) {
		t.Errorf("expected ErrInvalidPhoto, got %v", err)
	}

	photos := []Photo{{PositionIndex: 0}, {PositionIndex: 2}}
	if got := NextPosition(photos); got != 1 {
		t.Errorf("NextPosition = %d, want 1", got)
	}
	if got := NextPosition(nil); got != 0 {
		t.Errorf("NextPosition(nil) = %d, want 0", got)
	}
}

func TestNewMessage(t *testing.T) {
	m, err := NewMessage("abc12345", RoleUser, " how was today? ", time.Now())
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if m.Content != "how was today?" {
		t.Errorf("content = %q", m.Content)
	}
	if _, err := NewMessage("abc12345", Role("bot"), "x", time.Now()); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}
