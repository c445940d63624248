package cmd

import (
	"io"
	"strings"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/editor"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

type updateOptions struct {
	mood, title, date string
	setMood, setTitle bool
	appendText        string
	images            []string
	edit              bool
}

var updateOpts updateOptions

var updateCmd = &cobra.Command{
	Use:   "update <id> [text...]",
	Short: "Change a mood entry",
	Long: `Change an entry's mood, title, date or body.

Text after the ID replaces the body ("-" reads it from stdin). --append adds
a paragraph, --image adds an image block and --edit opens the body in your
editor.`,
	Example: `  moodctl update a3kf9x2m --mood 😄
  moodctl update a3kf9x2m --date 2025-09-16 --title "Lake day"
  moodctl update a3kf9x2m --append "Later: felt better [PHOTO:2]"
  moodctl update a3kf9x2m --edit`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := updateOpts
		opts.setMood = cmd.Flags().Changed("mood")
		opts.setTitle = cmd.Flags().Changed("title")
		return updateRun(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], args[1:], opts)
	},
	PostRunE: invalidateCachePostRun,
}

func updateRun(w io.Writer, in io.Reader, id string, text []string, o updateOptions) error {
	current, err := store.Get(id)
	if err != nil {
		return err
	}

	var u storage.EntryUpdate
	changed := false

	if o.setMood {
		u.Mood = &o.mood
		changed = true
	}
	if o.setTitle {
		title := strings.TrimSpace(o.title)
		u.Title = &title
		changed = true
	}
	if o.date != "" {
		d, err := datemath.ParseDate(o.date)
		if err != nil {
			return userErr("invalid --date: %v", err)
		}
		s := d.Format(entry.DateLayout)
		u.Date = &s
		changed = true
	}

	content := current.Content
	contentChanged := false
	if len(text) > 0 {
		content, err = readBody(in, text)
		if err != nil {
			return err
		}
		contentChanged = true
	}
	if strings.TrimSpace(o.appendText) != "" {
		content = append(append([]entry.Block(nil), content...), entry.ParseBlocks(o.appendText)...)
		contentChanged = true
	}
	if len(o.images) > 0 {
		images, err := parseImages(o.images)
		if err != nil {
			return err
		}
		content = append(append([]entry.Block(nil), content...), images...)
		contentChanged = true
	}
	if o.edit {
		edited, ok, err := editor.EditBlocks(editor.ResolveEditor(appConfig.Editor), content)
		if err != nil {
			return err
		}
		if ok {
			content = edited
			contentChanged = true
		}
	}
	if contentChanged {
		u.Content = content
		changed = true
	}

	if !changed {
		if jsonOutput {
			return ui.FormatJSON(w, current)
		}
		ui.FormatNoChanges(w, id)
		return nil
	}

	updated, err := store.Update(id, u)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, updated)
	}
	ui.FormatEntryUpdated(w, updated)
	return nil
}

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Short:   "Edit a mood entry's body in your editor",
	Long:    "Shorthand for update <id> --edit.",
	Example: `  moodctl edit a3kf9x2m`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRun(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], nil, updateOptions{edit: true})
	},
	PostRunE: invalidateCachePostRun,
}

func init() {
	updateCmd.Flags().StringVarP(&updateOpts.mood, "mood", "m", "", "new mood glyph")
	updateCmd.Flags().StringVarP(&updateOpts.title, "title", "t", "", "new title (empty clears it)")
	updateCmd.Flags().StringVar(&updateOpts.date, "date", "", "move the entry to this date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateOpts.appendText, "append", "", "append text as new paragraph(s)")
	updateCmd.Flags().StringArrayVar(&updateOpts.images, "image", nil, "append an image block, url[=caption] (repeatable)")
	updateCmd.Flags().BoolVarP(&updateOpts.edit, "edit", "e", false, "edit the body in your editor")
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(editCmd)
}
