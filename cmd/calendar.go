package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var calendarNoTUI bool

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Show a month of moods",
	Long: `Show the moods recorded on each day of a month, the current month by
default. Each day lists at most calendar.max_per_day moods followed by +N for
the rest.

On a terminal an interactive browser opens: move between days with the arrow
keys or h/j/k/l, switch months with n and p, and press enter to see a day's
entries. Use --no-tui or --json to print instead.`,
	Example: `  moodctl calendar
  moodctl calendar 2025-09
  moodctl calendar 2025-09 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := now()
		month, year := int(t.Month()), t.Year()
		if len(args) == 1 {
			var err error
			month, year, err = parseMonth(args[0])
			if err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		if !calendarNoTUI && !jsonOutput && w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
			return ui.RunBrowser(store, browserConfig(), month, year)
		}
		return calendarRun(w, month, year)
	},
}

func calendarOptions() ui.CalendarOptions {
	return ui.CalendarOptions{
		WeekStart: appConfig.Calendar.WeekStartDay(),
		MaxPerDay: appConfig.Calendar.MaxPerDay,
		Today:     now(),
		Theme:     theme(),
	}
}

func calendarRun(w io.Writer, month, year int) error {
	cells, err := calendar.LoadMonth(store, month, year)
	if err != nil {
		return err
	}
	warnUnplaceable()

	opts := calendarOptions()
	if jsonOutput {
		m, err := ui.BuildMonthJSON(cells, month, year, opts, now())
		if err != nil {
			return err
		}
		return ui.FormatJSON(w, m)
	}
	out, err := ui.RenderCalendar(cells, month, year, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)
	return nil
}

// warnUnplaceable logs entries whose date cannot be placed on any calendar.
func warnUnplaceable() {
	if !log.Core().Enabled(zap.WarnLevel) {
		return
	}
	all, err := store.List(storage.ListOptions{})
	if err != nil {
		return
	}
	for _, e := range calendar.Unplaceable(all) {
		log.Warn("entry has an invalid date and is not shown", zap.String("id", e.ID), zap.String("date", e.Date))
	}
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarNoTUI, "no-tui", false, "print the month instead of opening the browser")
	rootCmd.AddCommand(calendarCmd)
}
