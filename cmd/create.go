package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

type createOptions struct {
	date   string
	mood   string
	title  string
	images []string
}

var createOpts createOptions

var createCmd = &cobra.Command{
	Use:   "create [text...]",
	Short: "Record a new mood entry",
	Long: `Record a new mood entry.

Text given as arguments becomes the entry body; blank lines separate
paragraphs and [PHOTO:N] refers to the entry's Nth photo. "-" reads the body
from stdin. With no text your editor is opened.`,
	Example: `  moodctl create --mood 😊 "Swam at dawn"
  moodctl create --mood 😢 --date 2025-09-14 --title "Long day"
  echo "piped text" | moodctl create --mood 🙂 -
  moodctl create --mood 😄 --image https://img.example/sky.png=sky`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := createRun(cmd.InOrStdin(), args, createOpts, now())
		if err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), e)
		}
		ui.FormatEntryCreated(cmd.OutOrStdout(), e)
		return nil
	},
	PostRunE: invalidateCachePostRun,
}

func createRun(in io.Reader, args []string, opts createOptions, t time.Time) (entry.Entry, error) {
	day := t
	if opts.date != "" {
		d, err := datemath.ParseDate(opts.date)
		if err != nil {
			return entry.Entry{}, userErr("invalid --date: %v", err)
		}
		day = d
	}

	mood := opts.mood
	if mood == "" {
		mood = appConfig.Calendar.DefaultMood
	}

	var blocks []entry.Block
	if len(args) > 0 || len(opts.images) == 0 {
		var err error
		blocks, err = readBody(in, args)
		if err != nil {
			return entry.Entry{}, err
		}
	}
	images, err := parseImages(opts.images)
	if err != nil {
		return entry.Entry{}, err
	}
	blocks = append(blocks, images...)

	e, err := entry.New(day, mood, opts.title, blocks, t)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := store.Create(e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// readBody gets entry text from args, stdin ("-") or the editor.
func readBody(in io.Reader, args []string) ([]entry.Block, error) {
	switch {
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return entry.ParseBlocks(string(data)), nil
	case len(args) > 0:
		return entry.ParseBlocks(strings.Join(args, " ")), nil
	}

	text, changed, err := editor.Edit(editor.ResolveEditor(appConfig.Editor), "")
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, userErr("empty content")
	}
	return entry.ParseBlocks(text), nil
}

// parseImages turns url[=caption] flag values into image blocks.
func parseImages(values []string) ([]entry.Block, error) {
	blocks := make([]entry.Block, 0, len(values))
	for _, v := range values {
		url, caption, _ := strings.Cut(v, "=")
		b := entry.Image(strings.TrimSpace(url), strings.TrimSpace(caption))
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: --image %q: %w", storage.ErrValidation, v, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func init() {
	createCmd.Flags().StringVar(&createOpts.date, "date", "", "entry date (YYYY-MM-DD, default today)")
	createCmd.Flags().StringVarP(&createOpts.mood, "mood", "m", "", "mood glyph (default calendar.default_mood)")
	createCmd.Flags().StringVarP(&createOpts.title, "title", "t", "", "optional title")
	createCmd.Flags().StringArrayVar(&createOpts.images, "image", nil, "append an image block, url[=caption] (repeatable)")
	rootCmd.AddCommand(createCmd)
}
