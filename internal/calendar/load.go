package calendar

import (
	"fmt"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
)

// Lister is the part of storage.Storage that LoadMonth needs.
type Lister interface {
	List(opts storage.ListOptions) ([]entry.Entry, error)
}

// LoadMonth fetches the live entries of month/year and builds its cells.
// Within a day, entries are oldest first.
func LoadMonth(store Lister, month, year int) ([]Cell, error) {
	first, last, err := Bounds(month, year)
	if err != nil {
		return nil, err
	}
	entries, err := store.List(storage.ListOptions{StartDate: &first, EndDate: &last})
	if err != nil {
		return nil, fmt.Errorf("listing entries for %04d-%02d: %w", year, month, err)
	}

	// List returns newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return Build(entries, month, year)
}
