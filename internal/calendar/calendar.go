// Package calendar groups journal entries into the days of a displayed month.
//
// Build is policy-free: it never sorts, filters by mood, or truncates.
// Presentation rules such as "show at most K per day" live in Cap and are
// applied by the caller.
package calendar

import (
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Cell holds the entries of one day of a month.
type Cell struct {
	// Date is local midnight of the cell's day.
	Date time.Time

	// Day is the day of month, 1-based.
	Day int

	// Entries are the entries dated on this day, in input order.
	Entries []entry.Entry
}

// Build returns one cell per day of month/year, ordered by day ascending.
// Entries dated outside the month, or whose date does not parse, appear in
// no cell. The only error is datemath.ErrInvalidArgument for a bad month.
func Build(entries []entry.Entry, month, year int) ([]Cell, error) {
	days, err := datemath.DaysInMonth(month, year)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, days)
	for i := range cells {
		cells[i] = Cell{
			Date: time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.Local),
			Day:  i + 1,
		}
	}

	for _, e := range entries {
		d, err := e.Day()
		if err != nil {
			continue
		}
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		idx := d.Day() - 1
		cells[idx].Entries = append(cells[idx].Entries, e)
	}

	return cells, nil
}

// Unplaceable returns the entries whose date does not parse. Build silently
// skips these; callers use this to warn about them.
func Unplaceable(entries []entry.Entry) []entry.Entry {
	var bad []entry.Entry
	for _, e := range entries {
		if _, err := e.Day(); err != nil {
			bad = append(bad, e)
		}
	}
	return bad
}

// Cap splits a day's entries into the first k to show and the count of the
// rest. k <= 0 means no cap.
func Cap(entries []entry.Entry, k int) (shown []entry.Entry, overflow int) {
	if k <= 0 || len(entries) <= k {
		return entries, 0
	}
	return entries[:k], len(entries) - k
}

// Moods returns the mood glyphs of entries in order.
func Moods(entries []entry.Entry) []string {
	moods := make([]string, len(entries))
	for i, e := range entries {
		moods[i] = e.Mood
	}
	return moods
}

// Next returns the month after month/year.
func Next(month, year int) (int, int) {
	if month >= 12 {
		return 1, year + 1
	}
	return month + 1, year
}

// Prev returns the month before month/year.
func Prev(month, year int) (int, int) {
	if month <= 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// Bounds returns local midnight of the first and last day of month/year,
// suitable for a storage date-range query.
func Bounds(month, year int) (first, last time.Time, err error) {
	days, err := datemath.DaysInMonth(month, year)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last = time.Date(year, time.Month(month), days, 0, 0, 0, 0, time.Local)
	return first, last, nil
}
