package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/datemath"
)

// calendarCellWidth fits three moods and a two-digit overflow marker.
const calendarCellWidth = 10

// CalendarOptions controls how a month grid is drawn.
type CalendarOptions struct {
	WeekStart time.Weekday
	MaxPerDay int       // moods shown per day before "+N"; <= 0 shows all
	Today     time.Time // highlighted when inside the month; zero disables
	Selected  int       // cursor day of month; 0 for none
	Theme     Theme
}

// WeekdayHeader returns two-letter weekday names starting at weekStart.
func WeekdayHeader(weekStart time.Weekday) []string {
	names := make([]string, 7)
	for i := range names {
		names[i] = ((weekStart + time.Weekday(i)) % 7).String()[:2]
	}
	return names
}

// DaySummary returns the capped mood strip for a cell, e.g. "😊😢🙂+2".
func DaySummary(c calendar.Cell, maxPerDay int) string {
	shown, overflow := calendar.Cap(c.Entries, maxPerDay)
	s := strings.Join(calendar.Moods(shown), "")
	if overflow > 0 {
		s += fmt.Sprintf("+%d", overflow)
	}
	return s
}

// RenderCalendar draws cells as a month grid. Each week is two lines: day
// numbers, then mood strips.
func RenderCalendar(cells []calendar.Cell, month, year int, opts CalendarOptions) (string, error) {
	days, err := datemath.DaysInMonth(month, year)
	if err != nil {
		return "", err
	}
	if len(cells) != days {
		return "", fmt.Errorf("%w: %d cells for a %d-day month", datemath.ErrInvalidArgument, len(cells), days)
	}
	offset, err := datemath.FirstWeekdayOfMonth(month, year, opts.WeekStart)
	if err != nil {
		return "", err
	}

	pad := lipgloss.NewStyle().Width(calendarCellWidth).MaxHeight(1)
	blank := pad.Render("")

	var b strings.Builder
	title := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	b.WriteString(opts.Theme.HeaderStyle().Width(calendarCellWidth * 7).Align(lipgloss.Center).Render(title))
	b.WriteString("\n")

	var header strings.Builder
	for _, name := range WeekdayHeader(opts.WeekStart) {
		header.WriteString(pad.Render(name))
	}
	b.WriteString(opts.Theme.HelpStyle().Render(strings.TrimRight(header.String(), " ")))
	b.WriteString("\n")

	todayInMonth := !opts.Today.IsZero() && opts.Today.Year() == year && int(opts.Today.Month()) == month

	slots := offset + days
	weeks := (slots + 6) / 7
	for w := 0; w < weeks; w++ {
		var nums, moods strings.Builder
		for col := 0; col < 7; col++ {
			idx := w*7 + col - offset
			if idx < 0 || idx >= days {
				nums.WriteString(blank)
				moods.WriteString(blank)
				continue
			}
			c := cells[idx]
			label := fmt.Sprintf("%2d", c.Day)
			switch {
			case c.Day == opts.Selected:
				label = opts.Theme.SelectedStyle().Render(label)
			case todayInMonth && c.Day == opts.Today.Day():
				label = opts.Theme.TodayStyle().Render(label)
			}
			nums.WriteString(pad.Render(label))
			moods.WriteString(pad.Render(DaySummary(c, opts.MaxPerDay)))
		}
		b.WriteString(strings.TrimRight(nums.String(), " "))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(moods.String(), " "))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// DayJSON is the JSON representation of one calendar cell.
type DayJSON struct {
	Date     string         `json:"date"`
	Day      int            `json:"day"`
	Moods    []string       `json:"moods"`
	Overflow int            `json:"overflow"`
	Entries  []EntrySummary `json:"entries"`
}

// MonthJSON is the JSON representation of a month grid.
type MonthJSON struct {
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	WeekStart string    `json:"week_start"`
	Leading   int       `json:"leading_blanks"`
	Days      []DayJSON `json:"days"`
}

// BuildMonthJSON converts cells for JSON output, capping moods like the grid.
func BuildMonthJSON(cells []calendar.Cell, month, year int, opts CalendarOptions, now time.Time) (MonthJSON, error) {
	offset, err := datemath.FirstWeekdayOfMonth(month, year, opts.WeekStart)
	if err != nil {
		return MonthJSON{}, err
	}
	out := MonthJSON{
		Month:     month,
		Year:      year,
		WeekStart: opts.WeekStart.String(),
		Leading:   offset,
		Days:      make([]DayJSON, len(cells)),
	}
	for i, c := range cells {
		shown, overflow := calendar.Cap(c.Entries, opts.MaxPerDay)
		out.Days[i] = DayJSON{
			Date:     c.Date.Format("2006-01-02"),
			Day:      c.Day,
			Moods:    calendar.Moods(shown),
			Overflow: overflow,
			Entries:  ToSummaries(c.Entries, now),
		}
	}
	return out, nil
}
