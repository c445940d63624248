package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"go.uber.org/zap"
	yaml "go.yaml.in/yaml/v3"
)

// Store implements storage.Storage using Markdown files with YAML
// front-matter. Each entry is one file under entries/YYYY/MM/DD/<id>.md. The
// front-matter holds metadata, the typed content blocks, attached photos and
// the chat transcript. The body is a readable rendering of the blocks and is
// only parsed for files written without a content list.
type Store struct {
	baseDir string // e.g. ~/.moodctl/entries/
	log     *zap.Logger
}

// Compile-time check that Store implements storage.Storage
var _ storage.Storage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report skipped files.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a new Markdown file storage backend.
func New(dataDir string, opts ...Option) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	s := &Store{baseDir: entriesDir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

// record is everything stored in one entry file.
type record struct {
	entry    entry.Entry
	photos   []entry.Photo
	messages []entry.Message
}

func (s *Store) entryPath(e entry.Entry) string {
	// Date is validated before any write, so the split is safe.
	parts := strings.SplitN(e.Date, "-", 3)
	return filepath.Join(s.baseDir, parts[0], parts[1], parts[2], e.ID+".md")
}

type fmPhoto struct {
	ID            string `yaml:"id"`
	StoragePath   string `yaml:"storage_path"`
	Caption       string `yaml:"caption,omitempty"`
	PositionIndex int    `yaml:"position_index"`
	UploadedAt    string `yaml:"uploaded_at"`
}

type fmMessage struct {
	ID        string `yaml:"id"`
	Role      string `yaml:"role"`
	Content   string `yaml:"content"`
	CreatedAt string `yaml:"created_at"`
}

type frontMatter struct {
	ID        string        `yaml:"id"`
	Date      string        `yaml:"date"`
	Mood      string        `yaml:"mood"`
	Title     string        `yaml:"title,omitempty"`
	Deleted   bool          `yaml:"deleted,omitempty"`
	CreatedAt string        `yaml:"created_at"`
	UpdatedAt string        `yaml:"updated_at"`
	Content   []entry.Block `yaml:"content,omitempty"`
	Photos    []fmPhoto     `yaml:"photos,omitempty"`
	Messages  []fmMessage   `yaml:"messages,omitempty"`
}

func (s *Store) marshal(r record) ([]byte, error) {
	e := r.entry
	fm := frontMatter{
		ID:        e.ID,
		Date:      e.Date,
		Mood:      e.Mood,
		Title:     e.Title,
		Deleted:   e.Deleted,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
		Content:   e.Content,
	}
	for _, p := range r.photos {
		fm.Photos = append(fm.Photos, fmPhoto{
			ID:            p.ID,
			StoragePath:   p.StoragePath,
			Caption:       p.Caption,
			PositionIndex: p.PositionIndex,
			UploadedAt:    p.UploadedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, m := range r.messages {
		fm.Messages = append(fm.Messages, fmMessage{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(entry.FormatBlocks(e.Content))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (s *Store) unmarshal(data []byte) (record, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return record{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return record{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return record{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}

	content := fm.Content
	if len(content) == 0 {
		content = entry.ParseBlocks(string(body))
	}

	r := record{entry: entry.Entry{
		ID:        fm.ID,
		Date:      fm.Date,
		Mood:      fm.Mood,
		Title:     fm.Title,
		Content:   content,
		Deleted:   fm.Deleted,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}}
	for _, p := range fm.Photos {
		uploadedAt, _ := time.Parse(time.RFC3339, p.UploadedAt)
		r.photos = append(r.photos, entry.Photo{
			ID:            p.ID,
			EntryID:       fm.ID,
			StoragePath:   p.StoragePath,
			Caption:       p.Caption,
			PositionIndex: p.PositionIndex,
			UploadedAt:    uploadedAt,
		})
	}
	for _, m := range fm.Messages {
		created, _ := time.Parse(time.RFC3339, m.CreatedAt)
		r.messages = append(r.messages, entry.Message{
			ID:        m.ID,
			EntryID:   fm.ID,
			Role:      entry.Role(m.Role),
			Content:   m.Content,
			CreatedAt: created,
		})
	}
	return r, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

func (s *Store) save(path string, r record) error {
	data, err := s.marshal(r)
	if err != nil {
		return err
	}
	return s.atomicWrite(path, data)
}

func (s *Store) load(path string) (record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(data)
}

// walk calls fn for every readable entry file. Malformed files are skipped.
func (s *Store) walk(fn func(path string, r record) (stop bool)) error {
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		r, err := s.load(path)
		if err != nil {
			s.log.Debug("skipping malformed entry file", zap.String("path", path), zap.Error(err))
			return nil
		}
		if fn(path, r) {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	return nil
}

// findEntryPath locates the file for a given entry ID.
func (s *Store) findEntryPath(id string) (string, error) {
	var found string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return "", storage.ErrNotFound
	}
	return found, nil
}

// loadLive returns the path and record of a non-deleted entry.
func (s *Store) loadLive(id string) (string, record, error) {
	path, err := s.findEntryPath(id)
	if err != nil {
		return "", record{}, err
	}
	r, err := s.load(path)
	if err != nil {
		return "", record{}, err
	}
	if r.entry.Deleted {
		return "", record{}, storage.ErrNotFound
	}
	return path, r, nil
}

// Create persists a new journal entry as a Markdown file.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := entry.ValidateID(e.ID); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if _, err := s.findEntryPath(e.ID); err == nil {
		return fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
	}
	return s.save(s.entryPath(e), record{entry: e})
}

// Get retrieves a non-deleted entry by ID.
func (s *Store) Get(id string) (entry.Entry, error) {
	_, r, err := s.loadLive(id)
	if err != nil {
		return entry.Entry{}, err
	}
	return r.entry, nil
}

// List returns entries matching the given options.
func (s *Store) List(opts storage.ListOptions) ([]entry.Entry, error) {
	var entries []entry.Entry
	err := s.walk(func(_ string, r record) bool {
		if storage.Matches(r.entry, opts) {
			entries = append(entries, r.entry)
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return storage.Less(entries[i], entries[j])
	})
	if entries == nil {
		entries = []entry.Entry{}
	}
	return storage.Paginate(entries, opts), nil
}

// Update applies an explicit edit. A date change moves the file.
func (s *Store) Update(id string, u storage.EntryUpdate) (entry.Entry, error) {
	path, r, err := s.loadLive(id)
	if err != nil {
		return entry.Entry{}, err
	}
	updated, err := storage.Apply(r.entry, u, time.Now())
	if err != nil {
		return entry.Entry{}, err
	}
	r.entry = updated

	newPath := s.entryPath(updated)
	if err := s.save(newPath, r); err != nil {
		return entry.Entry{}, err
	}
	if newPath != path {
		if err := os.Remove(path); err != nil {
			return entry.Entry{}, fmt.Errorf("%w: removing old file: %v", storage.ErrStorage, err)
		}
	}
	return updated, nil
}

// Delete soft-deletes an entry by flagging it. The file stays on disk.
func (s *Store) Delete(id string) error {
	path, r, err := s.loadLive(id)
	if err != nil {
		return err
	}
	r.entry.Deleted = true
	r.entry.UpdatedAt = time.Now().UTC()
	return s.save(path, r)
}

// AddPhoto attaches a photo to its entry.
func (s *Store) AddPhoto(p entry.Photo) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	path, r, err := s.loadLive(p.EntryID)
	if err != nil {
		return err
	}
	for _, existing := range r.photos {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: photo %s already exists", storage.ErrConflict, p.ID)
		}
		if existing.PositionIndex == p.PositionIndex {
			return fmt.Errorf("%w: position %d already used", storage.ErrConflict, p.PositionIndex)
		}
	}
	r.photos = append(r.photos, p)
	return s.save(path, r)
}

// ListPhotos returns an entry's photos ordered by position index.
func (s *Store) ListPhotos(entryID string) ([]entry.Photo, error) {
	_, r, err := s.loadLive(entryID)
	if err != nil {
		return nil, err
	}
	photos := append([]entry.Photo{}, r.photos...)
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].PositionIndex < photos[j].PositionIndex
	})
	return photos, nil
}

// DeletePhoto removes a photo by ID from whichever entry holds it.
func (s *Store) DeletePhoto(id string) error {
	var path string
	var found record
	err := s.walk(func(p string, r record) bool {
		for _, ph := range r.photos {
			if ph.ID == id {
				path, found = p, r
				return true
			}
		}
		return false
	})
	if err != nil {
		return err
	}
	if path == "" {
		return storage.ErrNotFound
	}

	kept := found.photos[:0]
	for _, ph := range found.photos {
		if ph.ID != id {
			kept = append(kept, ph)
		}
	}
	found.photos = kept
	return s.save(path, found)
}

// AppendMessage adds a chat message to its entry's transcript.
func (s *Store) AppendMessage(m entry.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	path, r, err := s.loadLive(m.EntryID)
	if err != nil {
		return err
	}
	r.messages = append(r.messages, m)
	return s.save(path, r)
}

// ListMessages returns an entry's chat transcript oldest first.
func (s *Store) ListMessages(entryID string) ([]entry.Message, error) {
	_, r, err := s.loadLive(entryID)
	if err != nil {
		return nil, err
	}
	msgs := append([]entry.Message{}, r.messages...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
