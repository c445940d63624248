package cmd

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

type listOptions struct {
	date    string
	month   string
	mood    string
	deleted bool
	limit   int
	idOnly  bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mood entries",
	Long:  "List mood entries with a preview, newest first.",
	Example: `  moodctl list
  moodctl list --month 2025-09
  moodctl list --date 2025-09-17
  moodctl list --mood 😢 --limit 5
  moodctl list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.OutOrStdout(), listOpts)
	},
}

// storageOptions converts flag values into a storage query.
func (o listOptions) storageOptions() (storage.ListOptions, error) {
	opts := storage.ListOptions{
		Mood:           o.mood,
		IncludeDeleted: o.deleted,
		Limit:          o.limit,
	}
	if o.limit < 0 {
		return opts, userErr("--limit must not be negative")
	}
	if o.date != "" && o.month != "" {
		return opts, userErr("--date and --month are mutually exclusive")
	}
	if o.date != "" {
		t, err := datemath.ParseDate(o.date)
		if err != nil {
			return opts, userErr("invalid --date (use YYYY-MM-DD): %s", o.date)
		}
		opts.Date = &t
	}
	if o.month != "" {
		month, year, err := parseMonth(o.month)
		if err != nil {
			return opts, err
		}
		first, last, err := calendar.Bounds(month, year)
		if err != nil {
			return opts, err
		}
		opts.StartDate, opts.EndDate = &first, &last
	}
	return opts, nil
}

// parseMonth reads YYYY-MM.
func parseMonth(s string) (month, year int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, userErr("invalid month %q (use YYYY-MM)", s)
	}
	return int(t.Month()), t.Year(), nil
}

func listRun(w io.Writer, o listOptions) error {
	opts, err := o.storageOptions()
	if err != nil {
		return err
	}
	entries, err := store.List(opts)
	if err != nil {
		return err
	}

	if o.idOnly {
		for _, e := range entries {
			fmt.Fprintln(w, e.ID)
		}
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries, now()))
	}
	var buf bytes.Buffer
	ui.FormatEntryList(&buf, entries, now())
	return ui.OutputOrPage(w, buf.String(), appConfig.MaxWidth, theme())
}

func init() {
	listCmd.Flags().StringVar(&listOpts.date, "date", "", "filter by date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listOpts.month, "month", "", "filter by month (YYYY-MM)")
	listCmd.Flags().StringVar(&listOpts.mood, "mood", "", "filter by mood glyph")
	listCmd.Flags().BoolVar(&listOpts.deleted, "deleted", false, "include deleted entries")
	listCmd.Flags().IntVar(&listOpts.limit, "limit", 0, "maximum number of entries (0 = all)")
	listCmd.Flags().BoolVar(&listOpts.idOnly, "id-only", false, "print just entry IDs, one per line")
	rootCmd.AddCommand(listCmd)
}
