package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color configuration. Empty fields fall back to the
// preset.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// CalendarConfig holds month grid configuration.
type CalendarConfig struct {
	MaxPerDay   int    `mapstructure:"max_per_day"`
	WeekStart   string `mapstructure:"week_start"`
	DefaultMood string `mapstructure:"default_mood"`
}

// ChatConfig holds the reflective chat endpoint configuration.
type ChatConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	Model        string `mapstructure:"model"`
	APIKey       string `mapstructure:"api_key"`
	Timeout      string `mapstructure:"timeout"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// ShellConfig holds shell prompt status configuration.
type ShellConfig struct {
	TodayIcon   string `mapstructure:"today_icon"`
	NoTodayIcon string `mapstructure:"no_today_icon"`
	StreakIcon  string `mapstructure:"streak_icon"`
	CacheTTL    string `mapstructure:"cache_ttl"`
	ShowMood    bool   `mapstructure:"show_mood"`
	ShowBackend bool   `mapstructure:"show_backend"`
}

// Config holds the application configuration.
type Config struct {
	Storage  string         `mapstructure:"storage"`
	DataDir  string         `mapstructure:"data_dir"`
	Editor   string         `mapstructure:"editor"`
	LogLevel string         `mapstructure:"log_level"`
	MaxWidth int            `mapstructure:"max_width"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Shell    ShellConfig    `mapstructure:"shell"`
}

// DefaultDataDir returns the default data directory (~/.moodctl/).
func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", ".moodctl")
	}
	return filepath.Join(home, ".moodctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("editor", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_width", 100)
	v.SetDefault("calendar.max_per_day", 3)
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("calendar.default_mood", "🙂")
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("chat.endpoint", "https://api.openai.com/v1")
	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.api_key", "")
	v.SetDefault("chat.timeout", "60s")
	v.SetDefault("chat.system_prompt", "You are a gentle journaling companion. Ask short, open questions that help the writer reflect on the entry below.")
	v.SetDefault("shell.today_icon", "✓")
	v.SetDefault("shell.no_today_icon", "✗")
	v.SetDefault("shell.streak_icon", "🔥")
	v.SetDefault("shell.cache_ttl", "5m")
	v.SetDefault("shell.show_mood", true)
	v.SetDefault("shell.show_backend", false)

	// Config file
	if configPath != "" {
		expanded, err := homedir.Expand(configPath)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "moodctl"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: MOODCTL_STORAGE, MOODCTL_CHAT_API_KEY, etc.
	v.SetEnvPrefix("MOODCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	dataDir, err := homedir.Expand(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("expanding data_dir: %w", err)
	}
	cfg.DataDir = dataDir

	return cfg, nil
}

// WeekStartDay returns the configured first day of the week. Only Sunday and
// Monday are recognised; anything else means Sunday.
func (c CalendarConfig) WeekStartDay() time.Weekday {
	if strings.EqualFold(strings.TrimSpace(c.WeekStart), "monday") {
		return time.Monday
	}
	return time.Sunday
}

// TimeoutDuration parses the chat timeout, defaulting to one minute.
func (c ChatConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// CacheTTLDuration parses CacheTTL, falling back to five minutes.
func (c ShellConfig) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 5 * time.Minute
	}
	return d
}
