package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrInvalidMessage indicates a chat message that cannot be stored.
var ErrInvalidMessage = errors.New("invalid chat message")

// Message is one turn of a reflective chat about an entry.
type Message struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage builds a validated chat message.
func NewMessage(entryID string, role Role, content string, now time.Time) (Message, error) {
	id, err := NewID()
	if err != nil {
		return Message{}, fmt.Errorf("generating message ID: %w", err)
	}
	m := Message{
		ID:        id,
		EntryID:   entryID,
		Role:      role,
		Content:   strings.TrimSpace(content),
		CreatedAt: now.UTC(),
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Validate checks the message fields.
func (m *Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser, RoleAssistant:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidMessage, m.Role)
	}
	if m.EntryID == "" {
		return fmt.Errorf("%w: missing entry ID", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidMessage)
	}
	return nil
}
