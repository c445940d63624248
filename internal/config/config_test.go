package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	homedir.DisableCache = true
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "markdown" {
		t.Errorf("expected storage 'markdown', got %q", cfg.Storage)
	}
	if cfg.Calendar.MaxPerDay != 3 {
		t.Errorf("expected max_per_day 3, got %d", cfg.Calendar.MaxPerDay)
	}
	if cfg.Calendar.WeekStartDay() != time.Sunday {
		t.Errorf("expected Sunday week start, got %v", cfg.Calendar.WeekStartDay())
	}
	if cfg.Theme.Preset != "default-dark" {
		t.Errorf("expected preset 'default-dark', got %q", cfg.Theme.Preset)
	}
	if cfg.Theme.MarkdownStyle != "" {
		t.Errorf("expected empty markdown_style (uses preset default), got %q", cfg.Theme.MarkdownStyle)
	}
	if cfg.Chat.TimeoutDuration() != time.Minute {
		t.Errorf("expected 1m chat timeout, got %v", cfg.Chat.TimeoutDuration())
	}
	if filepath.Base(cfg.DataDir) != ".moodctl" {
		t.Errorf("expected data dir under .moodctl, got %q", cfg.DataDir)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
storage = "sqlite"
data_dir = "~/journal"

[calendar]
max_per_day = 5
week_start = "Monday"

[theme]
preset = "default-light"
primary = "#FF0000"
markdown_style = "light"

[chat]
model = "llama3"
timeout = "5s"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage != "sqlite" {
		t.Errorf("expected storage 'sqlite', got %q", cfg.Storage)
	}
	home := os.Getenv("HOME")
	if cfg.DataDir != filepath.Join(home, "journal") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.Calendar.MaxPerDay != 5 {
		t.Errorf("expected max_per_day 5, got %d", cfg.Calendar.MaxPerDay)
	}
	if cfg.Calendar.WeekStartDay() != time.Monday {
		t.Errorf("expected Monday week start, got %v", cfg.Calendar.WeekStartDay())
	}
	if cfg.Theme.Primary != "#FF0000" {
		t.Errorf("expected primary '#FF0000', got %q", cfg.Theme.Primary)
	}
	if cfg.Chat.Model != "llama3" {
		t.Errorf("expected chat model 'llama3', got %q", cfg.Chat.Model)
	}
	if cfg.Chat.TimeoutDuration() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Chat.TimeoutDuration())
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("MOODCTL_STORAGE", "diskv")
	t.Setenv("MOODCTL_CHAT_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != "diskv" {
		t.Errorf("expected storage 'diskv', got %q", cfg.Storage)
	}
	if cfg.Chat.APIKey != "sk-test" {
		t.Errorf("expected api key from env, got %q", cfg.Chat.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestTimeoutDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "soon", "-1s"} {
		if got := (ChatConfig{Timeout: in}).TimeoutDuration(); got != time.Minute {
			t.Errorf("TimeoutDuration(%q) = %v, want 1m", in, got)
		}
	}
}
