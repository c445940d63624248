package cmd

import (
	"fmt"
	"io"

	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/ui"
	"github.com/spf13/cobra"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a mood entry",
	Long: `Delete a mood entry. The entry is hidden from every view but kept in
storage; list --deleted still shows it. Requires confirmation unless --force
is used.`,
	Example: `  moodctl delete a3kf9x2m
  moodctl delete a3kf9x2m --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRun(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], forceDelete)
	},
	PostRunE: invalidateCachePostRun,
}

func deleteRun(in io.Reader, w io.Writer, id string, force bool) error {
	e, err := store.Get(id)
	if err != nil {
		return err
	}

	if !force {
		fmt.Fprintf(w, "Entry: %s %s (%s)\n", e.ID, e.Mood, datemath.FormatShortString(e.Date))
		fmt.Fprintf(w, "Preview: %s\n\n", e.Preview(60))

		confirmed, err := ui.Confirm(in, w, "Delete this entry?", theme())
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	if err := store.Delete(id); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: id, Deleted: true})
	}
	ui.FormatEntryDeleted(w, id)
	return nil
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
