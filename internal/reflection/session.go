package reflection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/render"
	"github.com/chris-regnier/moodctl/internal/storage"
	"go.uber.org/zap"
)

// Session is a reflective chat bound to one entry.
type Session struct {
	store        storage.Storage
	transport    Transport
	entry        entry.Entry
	systemPrompt string
	log          *zap.Logger
	now          func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession opens a chat about entryID. The entry must exist and not be
// deleted.
func NewSession(store storage.Storage, transport Transport, entryID, systemPrompt string, opts ...Option) (*Session, error) {
	e, err := store.Get(entryID)
	if err != nil {
		return nil, err
	}
	s := &Session{
		store:        store,
		transport:    transport,
		entry:        e,
		systemPrompt: systemPrompt,
		log:          zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Entry returns the entry the session is about.
func (s *Session) Entry() entry.Entry {
	return s.entry
}

// Transcript returns the stored messages, oldest first.
func (s *Session) Transcript() ([]entry.Message, error) {
	return s.store.ListMessages(s.entry.ID)
}

// Send records text as a user turn, asks the transport for a reply and
// records that too. The first turn of a transcript is preceded by a system
// message describing the entry. Nothing but the seed is stored when the
// transport fails.
func (s *Session) Send(ctx context.Context, text string) (entry.Message, error) {
	if strings.TrimSpace(text) == "" {
		return entry.Message{}, fmt.Errorf("%w: %w: empty content", storage.ErrValidation, entry.ErrInvalidMessage)
	}

	history, err := s.Transcript()
	if err != nil {
		return entry.Message{}, err
	}
	if len(history) == 0 {
		seed, err := s.seed()
		if err != nil {
			return entry.Message{}, err
		}
		if err := s.store.AppendMessage(seed); err != nil {
			return entry.Message{}, err
		}
		history = append(history, seed)
	}

	user, err := entry.NewMessage(s.entry.ID, entry.RoleUser, text, s.now())
	if err != nil {
		return entry.Message{}, fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}

	wire := make([]ChatMessage, 0, len(history)+1)
	for _, m := range history {
		wire = append(wire, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	wire = append(wire, ChatMessage{Role: string(entry.RoleUser), Content: user.Content})

	s.log.Debug("sending chat turn", zap.String("entry", s.entry.ID), zap.Int("messages", len(wire)))
	reply, err := s.transport.Complete(ctx, wire)
	if err != nil {
		return entry.Message{}, err
	}

	assistant, err := entry.NewMessage(s.entry.ID, entry.RoleAssistant, reply, s.now())
	if err != nil {
		return entry.Message{}, fmt.Errorf("%w: empty reply", ErrTransport)
	}
	if err := s.store.AppendMessage(user); err != nil {
		return entry.Message{}, err
	}
	if err := s.store.AppendMessage(assistant); err != nil {
		return entry.Message{}, err
	}
	return assistant, nil
}

func (s *Session) seed() (entry.Message, error) {
	photos, err := s.store.ListPhotos(s.entry.ID)
	if err != nil {
		return entry.Message{}, err
	}
	text := render.PlainText(render.Render(s.entry.Content, photos))

	var b strings.Builder
	if s.systemPrompt != "" {
		b.WriteString(s.systemPrompt)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Journal entry for %s.\nMood: %s\n", s.entry.Date, s.entry.Mood)
	if s.entry.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", s.entry.Title)
	}
	if text != "" {
		b.WriteString("\n")
		b.WriteString(text)
	}
	return entry.NewMessage(s.entry.ID, entry.RoleSystem, b.String(), s.now())
}
