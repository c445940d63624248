package datemath_test

import (
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		want  int
	}{
		{"leap february", 2, 2024, 29},
		{"common february", 2, 2023, 28},
		{"century non-leap", 2, 1900, 28},
		{"400-year leap", 2, 2000, 29},
		{"january", 1, 2025, 31},
		{"april", 4, 2025, 30},
		{"december", 12, 2025, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := datemath.DaysInMonth(tt.month, tt.year)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestDaysInMonthInvalid(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if _, err := datemath.DaysInMonth(month, 2025); !errors.Is(err, datemath.ErrInvalidArgument) {
			t.Errorf("DaysInMonth(%d) error = %v, want ErrInvalidArgument", month, err)
		}
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	// September 1, 2025 is a Monday.
	got, err := datemath.FirstWeekdayOfMonth(9, 2025, time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("sunday-start = %d, want 1", got)
	}

	got, _ = datemath.FirstWeekdayOfMonth(9, 2025, time.Monday)
	if got != 0 {
		t.Errorf("monday-start = %d, want 0", got)
	}

	// June 1, 2025 is a Sunday.
	got, _ = datemath.FirstWeekdayOfMonth(6, 2025, time.Monday)
	if got != 6 {
		t.Errorf("monday-start june = %d, want 6", got)
	}

	if _, err := datemath.FirstWeekdayOfMonth(13, 2025, time.Sunday); !errors.Is(err, datemath.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIsSameCalendarDay(t *testing.T) {
	a := time.Date(2025, 9, 17, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 9, 17, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC)

	if !datemath.IsSameCalendarDay(a, b) {
		t.Error("expected same day for early and late times")
	}
	if datemath.IsSameCalendarDay(b, c) {
		t.Error("expected different days across midnight")
	}
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2025, 9, 17, 12, 0, 0, 0, time.Local)
	tests := []struct {
		date string
		want string
	}{
		{"2025-09-16", "Yesterday"},
		{"2025-09-18", "Tomorrow"},
		{"2025-09-17", "Today"},
		{"2025-09-01", "Sep 1, 2025"},
		{"2025-09-15", "Sep 15, 2025"},
		{"garbage", datemath.InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := datemath.RelativeLabelString(tt.date, now); got != tt.want {
				t.Errorf("RelativeLabelString(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestRelativeLabelIgnoresTimeOfDay(t *testing.T) {
	tz := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2025, 9, 17, 0, 5, 0, 0, tz)

	// Late the previous evening is less than 24h ago but still yesterday.
	late := time.Date(2025, 9, 16, 23, 55, 0, 0, tz)
	if got := datemath.RelativeLabel(late, now); got != "Yesterday" {
		t.Errorf("got %q, want Yesterday", got)
	}

	// Later the same calendar day is more than 0 ms away but still today.
	sameDay := time.Date(2025, 9, 17, 23, 59, 0, 0, tz)
	if got := datemath.RelativeLabel(sameDay, now); got != "Today" {
		t.Errorf("got %q, want Today", got)
	}
}

func TestDayDiffAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	before := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	after := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	if got := datemath.DayDiff(after, before); got != 2 {
		t.Errorf("DayDiff across DST = %d, want 2", got)
	}
}

func TestFormatShortString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-01", "Sep 1, 2025"},
		{"2024-02-29T08:00:00Z", "Feb 29, 2024"},
		{"2023-02-29", datemath.InvalidDate},
		{"", datemath.InvalidDate},
		{"yesterday", datemath.InvalidDate},
	}
	for _, tt := range tests {
		if got := datemath.FormatShortString(tt.in); got != tt.want {
			t.Errorf("FormatShortString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
