package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// ListOptions controls filtering and ordering for List operations.
// Results are ordered by date descending, then created_at descending.
type ListOptions struct {
	Date           *time.Time // filter by single calendar date
	StartDate      *time.Time // inclusive lower bound (nil = no lower bound)
	EndDate        *time.Time // inclusive upper bound (nil = no upper bound)
	Mood           string     // exact mood glyph
	IncludeDeleted bool       // include soft-deleted entries
	Limit          int        // 0 = no limit
	Offset         int        // pagination offset
}

// EntryUpdate describes an explicit edit. Nil fields are left unchanged.
type EntryUpdate struct {
	Date    *string
	Mood    *string
	Title   *string
	Content []entry.Block
}

// Storage defines the interface for journal persistence.
type Storage interface {
	// Entry methods
	Create(e entry.Entry) error
	Get(id string) (entry.Entry, error)
	List(opts ListOptions) ([]entry.Entry, error)
	Update(id string, u EntryUpdate) (entry.Entry, error)
	Delete(id string) error

	// Photo methods
	AddPhoto(p entry.Photo) error
	ListPhotos(entryID string) ([]entry.Photo, error)
	DeletePhoto(id string) error

	// Chat methods
	AppendMessage(m entry.Message) error
	ListMessages(entryID string) ([]entry.Message, error)

	Close() error
}

// Apply returns e with the update applied and validated. Backends share it
// so every store enforces the same rules.
func Apply(e entry.Entry, u EntryUpdate, now time.Time) (entry.Entry, error) {
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Mood != nil {
		e.Mood = *u.Mood
	}
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Content != nil {
		e.Content = u.Content
	}
	if err := e.Validate(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	e.UpdatedAt = now.UTC()
	return e, nil
}

// Matches reports whether e passes the filters in opts. Entries whose date
// does not parse never match a date filter.
func Matches(e entry.Entry, opts ListOptions) bool {
	if e.Deleted && !opts.IncludeDeleted {
		return false
	}
	if opts.Mood != "" && e.Mood != opts.Mood {
		return false
	}
	if opts.Date == nil && opts.StartDate == nil && opts.EndDate == nil {
		return true
	}
	d, err := e.Day()
	if err != nil {
		return false
	}
	if opts.Date != nil {
		return datemath.IsSameCalendarDay(d, *opts.Date)
	}
	if opts.StartDate != nil && datemath.DayDiff(d, *opts.StartDate) < 0 {
		return false
	}
	if opts.EndDate != nil && datemath.DayDiff(d, *opts.EndDate) > 0 {
		return false
	}
	return true
}

// Less orders entries newest first: by date, then creation time.
func Less(a, b entry.Entry) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// Paginate applies opts.Offset and opts.Limit to an ordered slice.
func Paginate[T any](items []T, opts ListOptions) []T {
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return []T{}
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
