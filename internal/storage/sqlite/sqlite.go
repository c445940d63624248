package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// Compile-time check that Store implements storage.Storage
var _ storage.Storage = (*Store)(nil)

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "moodctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// The pragma returns the resulting mode as a row, so it must be queried.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			mood       TEXT NOT NULL CHECK(length(trim(mood)) > 0),
			title      TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL,
			deleted    INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			CHECK(created_at <= updated_at)
		);
		CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date DESC, created_at DESC);

		CREATE TABLE IF NOT EXISTS photos (
			id             TEXT PRIMARY KEY,
			entry_id       TEXT NOT NULL REFERENCES entries(id),
			storage_path   TEXT NOT NULL,
			caption        TEXT NOT NULL DEFAULT '',
			position_index INTEGER NOT NULL CHECK(position_index >= 0),
			uploaded_at    TEXT NOT NULL,
			UNIQUE(entry_id, position_index)
		);

		CREATE TABLE IF NOT EXISTS messages (
			id         TEXT PRIMARY KEY,
			entry_id   TEXT NOT NULL REFERENCES entries(id),
			role       TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_entry ON messages(entry_id, created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// execErr maps constraint violations to ErrConflict.
func execErr(what string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s: %v", storage.ErrConflict, what, err)
	}
	return fmt.Errorf("%w: %s: %v", storage.ErrStorage, what, err)
}

// Create persists a new journal entry.
func (s *Store) Create(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := entry.ValidateID(e.ID); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	content, err := json.Marshal(e.Content)
	if err != nil {
		return fmt.Errorf("%w: encoding content: %v", storage.ErrStorage, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO entries (id, date, mood, title, content, deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		e.ID,
		e.Date,
		e.Mood,
		e.Title,
		string(content),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return execErr("inserting entry", err)
	}
	return nil
}

const entryColumns = "id, date, mood, title, content, deleted, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (entry.Entry, error) {
	var e entry.Entry
	var content, createdStr, updatedStr string
	var deleted int
	if err := row.Scan(&e.ID, &e.Date, &e.Mood, &e.Title, &content, &deleted, &createdStr, &updatedStr); err != nil {
		return entry.Entry{}, err
	}
	e.Deleted = deleted != 0

	if err := json.Unmarshal([]byte(content), &e.Content); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: decoding content: %v", storage.ErrStorage, err)
	}
	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// Get retrieves a non-deleted entry by ID.
func (s *Store) Get(id string) (entry.Entry, error) {
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM entries WHERE id = ? AND deleted = 0", id)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// List returns entries matching the given options.
func (s *Store) List(opts storage.ListOptions) ([]entry.Entry, error) {
	query := "SELECT " + entryColumns + " FROM entries"
	var where []string
	var args []interface{}

	if !opts.IncludeDeleted {
		where = append(where, "deleted = 0")
	}
	if opts.Mood != "" {
		where = append(where, "mood = ?")
		args = append(args, opts.Mood)
	}
	if opts.Date != nil {
		where = append(where, "date = ?")
		args = append(args, opts.Date.Format(entry.DateLayout))
	} else {
		if opts.StartDate != nil {
			where = append(where, "date >= ?")
			args = append(args, opts.StartDate.Format(entry.DateLayout))
		}
		if opts.EndDate != nil {
			where = append(where, "date <= ?")
			args = append(args, opts.EndDate.Format(entry.DateLayout))
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY date DESC, created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning entry: %v", storage.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

// Update applies an explicit edit to a non-deleted entry.
func (s *Store) Update(id string, u storage.EntryUpdate) (entry.Entry, error) {
	current, err := s.Get(id)
	if err != nil {
		return entry.Entry{}, err
	}
	updated, err := storage.Apply(current, u, time.Now())
	if err != nil {
		return entry.Entry{}, err
	}
	content, err := json.Marshal(updated.Content)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: encoding content: %v", storage.ErrStorage, err)
	}

	_, err = s.db.Exec(
		"UPDATE entries SET date = ?, mood = ?, title = ?, content = ?, updated_at = ? WHERE id = ?",
		updated.Date,
		updated.Mood,
		updated.Title,
		string(content),
		updated.UpdatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: updating entry: %v", storage.ErrStorage, err)
	}
	return updated, nil
}

// Delete soft-deletes an entry.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(
		"UPDATE entries SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0",
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %v", storage.ErrStorage, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) requireLive(entryID string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM entries WHERE id = ? AND deleted = 0", entryID).Scan(&one)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: querying entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// AddPhoto attaches a photo to a non-deleted entry.
func (s *Store) AddPhoto(p entry.Photo) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := s.requireLive(p.EntryID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO photos (id, entry_id, storage_path, caption, position_index, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.EntryID, p.StoragePath, p.Caption, p.PositionIndex,
		p.UploadedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return execErr("inserting photo", err)
	}
	return nil
}

// ListPhotos returns an entry's photos ordered by position index.
func (s *Store) ListPhotos(entryID string) ([]entry.Photo, error) {
	if err := s.requireLive(entryID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT id, entry_id, storage_path, caption, position_index, uploaded_at
		 FROM photos WHERE entry_id = ? ORDER BY position_index`, entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing photos: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	photos := []entry.Photo{}
	for rows.Next() {
		var p entry.Photo
		var uploaded string
		if err := rows.Scan(&p.ID, &p.EntryID, &p.StoragePath, &p.Caption, &p.PositionIndex, &uploaded); err != nil {
			return nil, fmt.Errorf("%w: scanning photo: %v", storage.ErrStorage, err)
		}
		p.UploadedAt, _ = time.Parse(time.RFC3339, uploaded)
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating photos: %v", storage.ErrStorage, err)
	}
	return photos, nil
}

// DeletePhoto removes a photo by ID.
func (s *Store) DeletePhoto(id string) error {
	result, err := s.db.Exec("DELETE FROM photos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting photo: %v", storage.ErrStorage, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete result: %v", storage.ErrStorage, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AppendMessage adds a chat message to a non-deleted entry.
func (s *Store) AppendMessage(m entry.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := s.requireLive(m.EntryID); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO messages (id, entry_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.EntryID, string(m.Role), m.Content, m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return execErr("inserting message", err)
	}
	return nil
}

// ListMessages returns an entry's chat transcript oldest first.
func (s *Store) ListMessages(entryID string) ([]entry.Message, error) {
	if err := s.requireLive(entryID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		"SELECT id, entry_id, role, content, created_at FROM messages WHERE entry_id = ? ORDER BY created_at, rowid",
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing messages: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	msgs := []entry.Message{}
	for rows.Next() {
		var m entry.Message
		var role, created string
		if err := rows.Scan(&m.ID, &m.EntryID, &role, &m.Content, &created); err != nil {
			return nil, fmt.Errorf("%w: scanning message: %v", storage.ErrStorage, err)
		}
		m.Role = entry.Role(role)
		m.CreatedAt, _ = time.Parse(time.RFC3339, created)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating messages: %v", storage.ErrStorage, err)
	}
	return msgs, nil
}
