package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/moodctl/internal/config"
	"github.com/chris-regnier/moodctl/internal/logger"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/storage/diskv"
	"github.com/chris-regnier/moodctl/internal/storage/markdown"
	"github.com/chris-regnier/moodctl/internal/storage/sqlite"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	verbose        bool
	appConfig      *config.Config
	store          storage.Storage
	log            = zap.NewNop()

	// now is the clock used by every command.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "A mood journal for the terminal",
	Long: `moodctl records dated journal entries annotated with a mood glyph and
shows them on a month calendar. Entries hold paragraphs and images and may
reference attached photos inline with [PHOTO:N] markers.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		level := appConfig.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		store, err = openStore(appConfig, log)
		if err != nil {
			return err
		}
		log.Debug("storage ready", zap.String("backend", appConfig.Storage), zap.String("data_dir", appConfig.DataDir))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		t := now()
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return calendarRun(cmd.OutOrStdout(), int(t.Month()), t.Year())
		}
		return ui.RunBrowser(store, browserConfig(), int(t.Month()), t.Year())
	},
}

// openStore opens the backend named by cfg.Storage.
func openStore(cfg *config.Config, log *zap.Logger) (storage.Storage, error) {
	var (
		s   storage.Storage
		err error
	)
	switch cfg.Storage {
	case "markdown":
		s, err = markdown.New(cfg.DataDir, markdown.WithLogger(log))
	case "sqlite":
		s, err = sqlite.New(cfg.DataDir)
	case "diskv":
		s, err = diskv.New(cfg.DataDir, log)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q (markdown|sqlite|diskv)", storage.ErrValidation, cfg.Storage)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", cfg.Storage, err)
	}
	return s, nil
}

func theme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}

func browserConfig() ui.TUIConfig {
	return ui.TUIConfig{
		MaxWidth:  appConfig.MaxWidth,
		MaxPerDay: appConfig.Calendar.MaxPerDay,
		WeekStart: appConfig.Calendar.WeekStartDay(),
		Theme:     theme(),
		Now:       now,
	}
}

// Execute runs the root command and releases the storage backend.
func Execute() error {
	err := rootCmd.Execute()
	if store != nil {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	_ = log.Sync()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite|diskv)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
