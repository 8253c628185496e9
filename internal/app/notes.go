package app

import (
	"strings"

	"github.com/spf13/cobra"
)

func newNotesCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "notes <book> [text...]",
		Short: "Set the free-text notes on a saved book",
		Long: `Replace a saved book's notes with the given text.

Pass --clear instead of text to wipe the notes.

Examples:
  readctl notes a1b2c3 "re-read chapter 4 before the talk"
  readctl notes a1b2c3 --clear`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if clear {
				text = ""
			} else if text == "" {
				return cmd.Help()
			}

			ctx, cancel := opCtx()
			defer cancel()

			book, err := resolveBook(ctx, args[0])
			if err != nil {
				return err
			}
			return lib.UpdateNotes(ctx, book.ID, text)
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the notes instead of setting them")

	return cmd
}
