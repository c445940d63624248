package cmd

import (
	"fmt"
	"io"

	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	photoCaption  string
	photoPosition int
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage the photos attached to an entry",
	Long: `Attach, list and remove photos. A photo at position N (counting from 1)
is shown wherever the entry's text contains [PHOTO:N]. The storage path is
recorded as given; image bytes are not copied.`,
}

var photoAddCmd = &cobra.Command{
	Use:   "add <entry-id> <path>",
	Short: "Attach a photo to an entry",
	Example: `  moodctl photo add a3kf9x2m ~/Pictures/lake.jpg --caption "the lake"
  moodctl photo add a3kf9x2m s3://bucket/dog.png --position 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos := -1
		if cmd.Flags().Changed("position") {
			pos = photoPosition - 1
		}
		return photoAddRun(cmd.OutOrStdout(), args[0], args[1], photoCaption, pos)
	},
}

var photoListCmd = &cobra.Command{
	Use:     "list <entry-id>",
	Aliases: []string{"ls"},
	Short:   "List an entry's photos in marker order",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return photoListRun(cmd.OutOrStdout(), args[0])
	},
}

var photoRemoveCmd = &cobra.Command{
	Use:     "remove <photo-id>",
	Aliases: []string{"rm"},
	Short:   "Detach a photo",
	Long:    "Detach a photo. Markers that referred to it render as placeholders.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeletePhoto(args[0]); err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(cmd.OutOrStdout(), ui.DeleteResult{ID: args[0], Deleted: true})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed photo %s\n", args[0])
		return nil
	},
}

// photoAddRun attaches path to entryID. position < 0 picks the lowest free
// position.
func photoAddRun(w io.Writer, entryID, path, caption string, position int) error {
	existing, err := store.ListPhotos(entryID)
	if err != nil {
		return err
	}
	if position < 0 {
		position = entry.NextPosition(existing)
	}
	p, err := entry.NewPhoto(entryID, path, caption, position, now())
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrValidation, err)
	}
	if err := store.AddPhoto(p); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, p)
	}
	fmt.Fprintf(w, "Attached photo %s to %s; reference it with %s\n", p.ID, entryID, p.Marker())
	return nil
}

func photoListRun(w io.Writer, entryID string) error {
	photos, err := store.ListPhotos(entryID)
	if err != nil {
		return err
	}
	if jsonOutput {
		if photos == nil {
			photos = []entry.Photo{}
		}
		return ui.FormatJSON(w, photos)
	}
	ui.FormatPhotoList(w, photos)
	return nil
}

func init() {
	photoAddCmd.Flags().StringVarP(&photoCaption, "caption", "c", "", "photo caption")
	photoAddCmd.Flags().IntVar(&photoPosition, "position", 0, "marker number N for [PHOTO:N] (default: next free)")
	photoCmd.AddCommand(photoAddCmd, photoListCmd, photoRemoveCmd)
	rootCmd.AddCommand(photoCmd)
}
