package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "save <query...>",
		Short: "Save a book from the catalog into your library",
		Long: `Search the catalog and save a result into your library.

By default the first result is saved; pick another with --index (1-based,
matching the numbers 'readctl search' prints). Saving a book that is
already in the library is a no-op.

Examples:
  readctl save the pragmatic programmer
  readctl save "domain driven design" --index 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			ctx, cancel := opCtx()
			defer cancel()

			items, err := cat.Search(ctx, query)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no catalog results for %q", query)
			}
			if index < 1 || index > len(items) {
				return fmt.Errorf("--index %d out of range (1–%d)", index, len(items))
			}

			return lib.Save(ctx, items[index-1])
		},
	}

	cmd.Flags().IntVar(&index, "index", 1, "Which search result to save (1-based)")

	return cmd
}
