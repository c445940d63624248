package calendar_test

import (
	"errors"
	"testing"

	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
)

func makeEntry(id, date, mood string) entry.Entry {
	return entry.Entry{
		ID:      id,
		Date:    date,
		Mood:    mood,
		Content: []entry.Block{entry.Paragraph("entry " + id)},
	}
}

func TestBuildCellCount(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			cells, err := calendar.Build(nil, month, year)
			if err != nil {
				t.Fatalf("Build(%d, %d): %v", month, year, err)
			}
			want, _ := datemath.DaysInMonth(month, year)
			if len(cells) != want {
				t.Fatalf("Build(%d, %d) = %d cells, want %d", month, year, len(cells), want)
			}
			for i, c := range cells {
				if c.Day != i+1 {
					t.Errorf("cell %d has day %d", i, c.Day)
				}
				if c.Date.Day() != i+1 || int(c.Date.Month()) != month || c.Date.Year() != year {
					t.Errorf("cell %d has date %v", i, c.Date)
				}
			}
		}
	}
}

func TestBuildGroupsByDay(t *testing.T) {
	entries := []entry.Entry{
		makeEntry("aaaaaaa1", "2025-09-17", "😊"),
		makeEntry("aaaaaaa2", "2025-09-01", "😢"),
		makeEntry("aaaaaaa3", "2025-09-17", "😐"),
		makeEntry("aaaaaaa4", "2025-08-17", "😊"), // previous month
		makeEntry("aaaaaaa5", "2024-09-17", "😊"), // previous year
		makeEntry("aaaaaaa6", "2025-09-30", "🤩"),
	}

	cells, err := calendar.Build(entries, 9, 2025)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	day17 := cells[16].Entries
	if len(day17) != 2 {
		t.Fatalf("day 17 has %d entries, want 2", len(day17))
	}
	// Input order is preserved.
	if day17[0].ID != "aaaaaaa1" || day17[1].ID != "aaaaaaa3" {
		t.Errorf("day 17 order = %s, %s", day17[0].ID, day17[1].ID)
	}
	if len(cells[0].Entries) != 1 || cells[0].Entries[0].ID != "aaaaaaa2" {
		t.Errorf("day 1 entries = %v", cells[0].Entries)
	}
	if len(cells[29].Entries) != 1 {
		t.Errorf("day 30 entries = %d, want 1", len(cells[29].Entries))
	}

	total := 0
	for _, c := range cells {
		total += len(c.Entries)
	}
	if total != 4 {
		t.Errorf("placed %d entries, want 4 (out-of-month entries excluded)", total)
	}
}

func TestBuildSkipsUnparsableDates(t *testing.T) {
	entries := []entry.Entry{
		makeEntry("aaaaaaa1", "2025-09-17", "😊"),
		makeEntry("aaaaaaa2", "2025-13-40", "😢"),
		makeEntry("aaaaaaa3", "", "😐"),
	}
	cells, err := calendar.Build(entries, 9, 2025)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	total := 0
	for _, c := range cells {
		total += len(c.Entries)
	}
	if total != 1 {
		t.Errorf("placed %d entries, want 1", total)
	}

	bad := calendar.Unplaceable(entries)
	if len(bad) != 2 || bad[0].ID != "aaaaaaa2" || bad[1].ID != "aaaaaaa3" {
		t.Errorf("Unplaceable = %v", bad)
	}
}

func TestBuildInvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13} {
		_, err := calendar.Build(nil, month, 2025)
		if !errors.Is(err, datemath.ErrInvalidArgument) {
			t.Errorf("Build(month=%d) error = %v, want ErrInvalidArgument", month, err)
		}
	}
}

func TestBuildNeverTruncates(t *testing.T) {
	var entries []entry.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, makeEntry("bbbbbbb"+string(rune('0'+i)), "2024-02-29", "😊"))
	}
	cells, err := calendar.Build(entries, 2, 2024)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(cells[28].Entries); got != 10 {
		t.Errorf("leap day has %d entries, want 10", got)
	}
}

func TestCap(t *testing.T) {
	entries := []entry.Entry{
		makeEntry("c1", "2025-09-01", "1"),
		makeEntry("c2", "2025-09-01", "2"),
		makeEntry("c3", "2025-09-01", "3"),
		makeEntry("c4", "2025-09-01", "4"),
		makeEntry("c5", "2025-09-01", "5"),
	}
	tests := []struct {
		name         string
		entries      []entry.Entry
		k            int
		wantShown    int
		wantOverflow int
	}{
		{"over cap", entries, 3, 3, 2},
		{"at cap", entries[:3], 3, 3, 0},
		{"under cap", entries[:1], 3, 1, 0},
		{"empty", nil, 3, 0, 0},
		{"no cap", entries, 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown, overflow := calendar.Cap(tt.entries, tt.k)
			if len(shown) != tt.wantShown || overflow != tt.wantOverflow {
				t.Errorf("Cap() = %d shown, %d overflow; want %d, %d",
					len(shown), overflow, tt.wantShown, tt.wantOverflow)
			}
		})
	}
	shown, _ := calendar.Cap(entries, 3)
	if got := calendar.Moods(shown); len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("Moods = %v", got)
	}
}

func TestNextPrev(t *testing.T) {
	if m, y := calendar.Next(12, 2025); m != 1 || y != 2026 {
		t.Errorf("Next(12, 2025) = %d, %d", m, y)
	}
	if m, y := calendar.Next(5, 2025); m != 6 || y != 2025 {
		t.Errorf("Next(5, 2025) = %d, %d", m, y)
	}
	if m, y := calendar.Prev(1, 2025); m != 12 || y != 2024 {
		t.Errorf("Prev(1, 2025) = %d, %d", m, y)
	}
}

func TestBounds(t *testing.T) {
	first, last, err := calendar.Bounds(2, 2024)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if first.Day() != 1 || last.Day() != 29 {
		t.Errorf("Bounds = %v..%v", first, last)
	}
}
