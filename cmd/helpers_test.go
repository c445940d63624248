package cmd

import (
	"testing"
	"time"

	"github.com/chris-regnier/moodctl/internal/config"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/storage/markdown"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2025, 9, 17, 15, 0, 0, 0, time.Local)

func setupTestStore(t *testing.T, dir string) storage.Storage {
	t.Helper()
	s, err := markdown.New(dir, markdown.WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	store = setupTestStore(t, dir)
	log = zaptest.NewLogger(t)
	appConfig = &config.Config{
		Storage:  "markdown",
		DataDir:  dir,
		Editor:   "true",
		MaxWidth: 100,
		Calendar: config.CalendarConfig{MaxPerDay: 3, WeekStart: "sunday", DefaultMood: "🙂"},
		Theme:    config.ThemeConfig{Preset: "default-dark", MarkdownStyle: "notty"},
		Chat:     config.ChatConfig{SystemPrompt: "Be kind."},
		Shell: config.ShellConfig{
			TodayIcon:   "✓",
			NoTodayIcon: "✗",
			StreakIcon:  "🔥",
			CacheTTL:    "5m",
			ShowMood:    true,
		},
	}
	jsonOutput = false
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = time.Now })
}

// seedEntry stores an entry dated date with one paragraph.
func seedEntry(t *testing.T, date, mood, text string) entry.Entry {
	t.Helper()
	day, err := time.ParseInLocation(entry.DateLayout, date, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	e, err := entry.New(day, mood, "", []entry.Block{entry.Paragraph(text)}, testNow)
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}
	if err := store.Create(e); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return e
}
