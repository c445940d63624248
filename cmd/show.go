package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var showIDOnly bool
var showContentOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a mood entry",
	Long: `Display an entry with its metadata. [PHOTO:N] markers are replaced by the
entry's photos; markers without a photo show a placeholder.`,
	Example: `  moodctl show a3kf9x2m
  moodctl show a3kf9x2m --json
  moodctl show a3kf9x2m --content-only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.OutOrStdout(), args[0])
	},
}

func showRun(w io.Writer, id string) error {
	e, err := store.Get(id)
	if err != nil {
		return err
	}

	if showIDOnly {
		fmt.Fprintln(w, e.ID)
		return nil
	}
	if showContentOnly {
		fmt.Fprintln(w, entry.FormatBlocks(e.Content))
		return nil
	}

	photos, err := store.ListPhotos(e.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.NewEntryDetail(e, photos))
	}
	var buf bytes.Buffer
	th := theme()
	ui.FormatEntryFull(&buf, e, photos, th.MarkdownStyle, now())
	return ui.OutputOrPage(w, buf.String(), appConfig.MaxWidth, th)
}

func init() {
	showCmd.Flags().BoolVar(&showIDOnly, "id-only", false, "print just the entry ID")
	showCmd.Flags().BoolVar(&showContentOnly, "content-only", false, "print just the entry body in editor form")
	rootCmd.AddCommand(showCmd)
}
