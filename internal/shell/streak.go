package shell

import (
	"time"

	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
)

// streakWindow bounds how far back the streak query looks.
const streakWindow = 366

// Status is the prompt summary of the journal.
type Status struct {
	Today      bool
	Streak     int
	TodayMoods []string
}

// ComputeStatus reports whether today has an entry, the moods recorded
// today (oldest first) and the number of consecutive days ending today
// that have at least one entry. A day without an entry today does not
// break a streak that ended yesterday.
func ComputeStatus(store calendar.Lister, now time.Time) (Status, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -streakWindow)

	entries, err := store.List(storage.ListOptions{
		StartDate: &start,
		EndDate:   &today,
	})
	if err != nil {
		return Status{}, err
	}

	days := make(map[string]bool, len(entries))
	var todays []entry.Entry
	key := today.Format(entry.DateLayout)
	for _, e := range entries {
		days[e.Date] = true
		if e.Date == key {
			todays = append(todays, e)
		}
	}

	// List is newest first.
	for i, j := 0, len(todays)-1; i < j; i, j = i+1, j-1 {
		todays[i], todays[j] = todays[j], todays[i]
	}

	st := Status{Today: days[key], TodayMoods: calendar.Moods(todays)}

	check := today
	if !st.Today {
		check = check.AddDate(0, 0, -1)
	}
	for days[check.Format(entry.DateLayout)] {
		st.Streak++
		check = check.AddDate(0, 0, -1)
	}
	return st, nil
}
