// Package datemath provides pure calendar arithmetic for the journal.
// Nothing here reads the wall clock: callers pass "now" explicitly.
package datemath

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ShortLayout is the short display form, e.g. "Sep 1, 2025".
	ShortLayout = "Jan 2, 2006"

	// InvalidDate is returned by FormatShortString for unparsable input.
	InvalidDate = "Invalid Date"
)

// ErrInvalidArgument is returned for arguments outside their domain, such as
// a month outside 1..12.
var ErrInvalidArgument = errors.New("invalid argument")

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is outside 1..12", ErrInvalidArgument, month)
	}
	return nil
}

// DaysInMonth returns the number of days in the given Gregorian month.
func DaysInMonth(month, year int) (int, error) {
	if err := checkMonth(month); err != nil {
		return 0, err
	}
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// FirstWeekdayOfMonth returns the column (0..6) of day 1 in a week that
// starts on weekStart.
func FirstWeekdayOfMonth(month, year int, weekStart time.Weekday) (int, error) {
	if err := checkMonth(month); err != nil {
		return 0, err
	}
	wd := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) - int(weekStart) + 7) % 7, nil
}

// IsSameCalendarDay reports whether a and b fall on the same year, month and
// day, each read in its own location.
func IsSameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// civil maps t to UTC midnight of its own calendar date so that differences
// are exact multiples of 24h regardless of DST or offsets.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayDiff returns the signed number of calendar days from ref to date.
func DayDiff(date, ref time.Time) int {
	return int(civil(date).Sub(civil(ref)).Hours() / 24)
}

// RelativeLabel labels date relative to now: "Today", "Yesterday",
// "Tomorrow", or the short formatted date.
func RelativeLabel(date, now time.Time) string {
	switch DayDiff(date, now) {
	case 0:
		return "Today"
	case -1:
		return "Yesterday"
	case 1:
		return "Tomorrow"
	default:
		return FormatShort(date)
	}
}

// RelativeLabelString is RelativeLabel for a stored date string. Unparsable
// input yields InvalidDate.
func RelativeLabelString(s string, now time.Time) string {
	t, err := ParseDate(s)
	if err != nil {
		return InvalidDate
	}
	return RelativeLabel(t, now)
}

// FormatShort formats t as "Jan 2, 2006".
func FormatShort(t time.Time) string {
	return t.Format(ShortLayout)
}

// FormatShortString parses s and formats it with FormatShort. It never
// fails: unparsable input yields the literal InvalidDate.
func FormatShortString(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return InvalidDate
	}
	return FormatShort(t)
}

// ParseDate accepts "2006-01-02" or RFC 3339 input and returns local
// midnight of that calendar date. RFC 3339 values keep the calendar date of
// their own offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
}
