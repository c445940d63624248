package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPhoto indicates a photo that cannot be attached to an entry.
var ErrInvalidPhoto = errors.New("invalid photo")

// Photo is a stored photo attached to an entry. Paragraphs reference it with
// a [PHOTO:N] marker where N-1 == PositionIndex.
type Photo struct {
	ID            string    `json:"id"`
	EntryID       string    `json:"entry_id"`
	StoragePath   string    `json:"storage_path"`
	Caption       string    `json:"caption,omitempty"`
	PositionIndex int       `json:"position_index"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// NewPhoto builds a validated photo record for the given entry.
func NewPhoto(entryID, storagePath, caption string, position int, now time.Time) (Photo, error) {
	id, err := NewID()
	if err != nil {
		return Photo{}, fmt.Errorf("generating photo ID: %w", err)
	}
	p := Photo{
		ID:            id,
		EntryID:       entryID,
		StoragePath:   strings.TrimSpace(storagePath),
		Caption:       strings.TrimSpace(caption),
		PositionIndex: position,
		UploadedAt:    now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// Validate checks the photo fields.
func (p *Photo) Validate() error {
	if p.EntryID == "" {
		return fmt.Errorf("%w: missing entry ID", ErrInvalidPhoto)
	}
	if p.StoragePath == "" {
		return fmt.Errorf("%w: missing storage path", ErrInvalidPhoto)
	}
	if p.PositionIndex < 0 {
		return fmt.Errorf("%w: negative position index %d", ErrInvalidPhoto, p.PositionIndex)
	}
	return nil
}

// Marker returns the inline marker text that references this photo.
func (p *Photo) Marker() string {
	return fmt.Sprintf("[PHOTO:%d]", p.PositionIndex+1)
}

// NextPosition returns the smallest position index not used by photos.
func NextPosition(photos []Photo) int {
	used := make(map[int]bool, len(photos))
	for _, p := range photos {
		used[p.PositionIndex] = true
	}
	next := 0
	for used[next] {
		next++
	}
	return next
}
