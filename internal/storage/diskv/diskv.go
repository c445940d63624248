// Package diskv implements storage.Storage on a diskv key/value tree. Each
// record is a JSON document; keys are dash-separated paths so entries,
// photos and messages land in their own directories.
package diskv

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

const (
	entriesPrefix  = "entries"
	photosPrefix   = "photos"
	messagesPrefix = "messages"
)

// Store implements storage.Storage on top of diskv.
type Store struct {
	d   *diskv.Diskv
	log *zap.Logger
}

// Compile-time check that Store implements storage.Storage
var _ storage.Storage = (*Store)(nil)

// New opens a diskv store rooted at dataDir/kv.
func New(dataDir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dataDir == "" {
		return nil, fmt.Errorf("%w: empty data directory", storage.ErrStorage)
	}
	d := diskv.New(diskv.Options{
		BasePath:          strings.TrimSuffix(dataDir, "/") + "/kv",
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	return &Store{d: d, log: log}, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func entryKey(id string) string { return entriesPrefix + "-" + id }

func photoKey(entryID, id string) string { return photosPrefix + "-" + entryID + "-" + id }

func messageKey(entryID string, seq int) string {
	return fmt.Sprintf("%s-%s-%06d", messagesPrefix, entryID, seq)
}

// Close is a no-op; diskv writes through to disk.
func (s *Store) Close() error {
	return nil
}

func (s *Store) write(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", storage.ErrStorage, key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

func (s *Store) read(key string, v any) error {
	b, err := s.d.Read(key)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

// keys returns every key under prefix in lexical order.
func (s *Store) keys(prefix string) []string {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out []string
	for k := range s.d.KeysPrefix(prefix, ctx.Done()) {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Store) liveEntry(id string) (entry.Entry, error) {
	if id == "" || strings.Contains(id, "-") || !s.d.Has(entryKey(id)) {
		return entry.Entry{}, storage.ErrNotFound
	}
	var e entry.Entry
	if err := s.read(entryKey(id), &e); err != nil {
		return entry.Entry{}, err
	}
	if e.Deleted {
		return entry.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

// Create persists a new entry.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := entry.ValidateID(e.ID); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if s.d.Has(entryKey(e.ID)) {
		return fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
	}
	return s.write(entryKey(e.ID), e)
}

// Get retrieves a non-deleted entry by ID.
func (s *Store) Get(id string) (entry.Entry, error) {
	return s.liveEntry(id)
}

// List returns entries matching the given options.
func (s *Store) List(opts storage.ListOptions) ([]entry.Entry, error) {
	entries := []entry.Entry{}
	for _, key := range s.keys(entriesPrefix + "-") {
		var e entry.Entry
		if err := s.read(key, &e); err != nil {
			s.log.Debug("skipping unreadable record", zap.String("key", key), zap.Error(err))
			continue
		}
		if storage.Matches(e, opts) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return storage.Less(entries[i], entries[j])
	})
	return storage.Paginate(entries, opts), nil
}

// Update applies an explicit edit to a non-deleted entry.
func (s *Store) Update(id string, u storage.EntryUpdate) (entry.Entry, error) {
	current, err := s.liveEntry(id)
	if err != nil {
		return entry.Entry{}, err
	}
	updated, err := storage.Apply(current, u, time.Now())
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.write(entryKey(id), updated); err != nil {
		return entry.Entry{}, err
	}
	return updated, nil
}

// Delete soft-deletes an entry.
func (s *Store) Delete(id string) error {
	e, err := s.liveEntry(id)
	if err != nil {
		return err
	}
	e.Deleted = true
	e.UpdatedAt = time.Now().UTC()
	return s.write(entryKey(id), e)
}

// AddPhoto attaches a photo to a non-deleted entry.
func (s *Store) AddPhoto(p entry.Photo) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if _, err := s.liveEntry(p.EntryID); err != nil {
		return err
	}
	if err := entry.ValidateID(p.ID); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	existing, err := s.photos(p.EntryID)
	if err != nil {
		return err
	}
	for _, ph := range existing {
		if ph.ID == p.ID {
			return fmt.Errorf("%w: photo %s already exists", storage.ErrConflict, p.ID)
		}
		if ph.PositionIndex == p.PositionIndex {
			return fmt.Errorf("%w: position %d already used", storage.ErrConflict, p.PositionIndex)
		}
	}
	return s.write(photoKey(p.EntryID, p.ID), p)
}

func (s *Store) photos(entryID string) ([]entry.Photo, error) {
	photos := []entry.Photo{}
	for _, key := range s.keys(photosPrefix + "-" + entryID + "-") {
		var p entry.Photo
		if err := s.read(key, &p); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].PositionIndex < photos[j].PositionIndex
	})
	return photos, nil
}

// ListPhotos returns an entry's photos ordered by position index.
func (s *Store) ListPhotos(entryID string) ([]entry.Photo, error) {
	if _, err := s.liveEntry(entryID); err != nil {
		return nil, err
	}
	return s.photos(entryID)
}

// DeletePhoto removes a photo by ID.
func (s *Store) DeletePhoto(id string) error {
	suffix := "-" + id
	for _, key := range s.keys(photosPrefix + "-") {
		if strings.HasSuffix(key, suffix) {
			if err := s.d.Erase(key); err != nil {
				return fmt.Errorf("%w: erasing %s: %v", storage.ErrStorage, key, err)
			}
			return nil
		}
	}
	return storage.ErrNotFound
}

// AppendMessage adds a chat message to a non-deleted entry.
func (s *Store) AppendMessage(m entry.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if _, err := s.liveEntry(m.EntryID); err != nil {
		return err
	}
	seq := len(s.keys(messagesPrefix + "-" + m.EntryID + "-"))
	return s.write(messageKey(m.EntryID, seq), m)
}

// ListMessages returns an entry's chat transcript oldest first.
func (s *Store) ListMessages(entryID string) ([]entry.Message, error) {
	if _, err := s.liveEntry(entryID); err != nil {
		return nil, err
	}
	msgs := []entry.Message{}
	for _, key := range s.keys(messagesPrefix + "-" + entryID + "-") {
		var m entry.Message
		if err := s.read(key, &m); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
