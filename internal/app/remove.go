package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <book>",
		Aliases: []string{"remove"},
		Short:   "Remove a saved book from your library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx()
			defer cancel()

			book, err := resolveBook(ctx, args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Remove %q by %s? (y/N): ", book.Title, strings.Join(book.Authors, ", "))
				var response string
				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			return lib.Remove(ctx, book.ID)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
