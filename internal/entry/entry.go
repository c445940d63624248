package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8

	// DateLayout is the storage form of an entry's calendar date.
	DateLayout = "2006-01-02"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Validation errors.
var (
	ErrInvalidID    = errors.New("invalid ID: must be 8 lowercase alphanumeric characters")
	ErrEmptyMood    = errors.New("entry mood must not be empty")
	ErrInvalidDate  = errors.New("entry date must be a valid YYYY-MM-DD date")
	ErrEmptyContent = errors.New("entry content must not be empty")
)

// Entry is a single dated journal record.
type Entry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Mood      string    `json:"mood"`
	Title     string    `json:"title,omitempty"`
	Content   []Block   `json:"content"`
	Deleted   bool      `json:"deleted,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds a validated entry with a fresh ID and timestamps set to now.
func New(date time.Time, mood, title string, content []Block, now time.Time) (Entry, error) {
	id, err := NewID()
	if err != nil {
		return Entry{}, fmt.Errorf("generating entry ID: %w", err)
	}
	e := Entry{
		ID:        id,
		Date:      date.Format(DateLayout),
		Mood:      strings.TrimSpace(mood),
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// NewID generates a new nanoid for an entry, photo or chat message.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// ValidateMood checks that a mood glyph was chosen. The palette itself is
// not enforced.
func ValidateMood(mood string) error {
	if strings.TrimSpace(mood) == "" {
		return ErrEmptyMood
	}
	return nil
}

// ValidateDate checks that s is a real Gregorian date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

// Validate checks the fields every backend requires before persisting.
func (e *Entry) Validate() error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if err := ValidateMood(e.Mood); err != nil {
		return err
	}
	return ValidateContent(e.Content)
}

// Day returns the entry's calendar date at local midnight.
func (e *Entry) Day() (time.Time, error) {
	return datemath.ParseDate(e.Date)
}

// PlainText joins the paragraph text of the entry, one paragraph per line.
// Image blocks contribute their caption when present.
func (e *Entry) PlainText() string {
	var parts []string
	for _, b := range e.Content {
		switch b.Type {
		case BlockParagraph:
			parts = append(parts, b.Text)
		case BlockImage:
			if b.Caption != "" {
				parts = append(parts, b.Caption)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Preview returns a truncated single-line preview of the entry, preferring
// the title when one is set.
func (e *Entry) Preview(maxLen int) string {
	content := e.Title
	if content == "" {
		content = e.PlainText()
	}
	content = strings.ReplaceAll(content, "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return strings.Repeat(".", max(maxLen, 0))
	}
	return string(runes[:maxLen-3]) + "..."
}
