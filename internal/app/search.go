package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/readctl/internal/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the book catalog",
		Long: `Search the Google Books catalog by free text.

Results already in your library are marked with a green check. Repeated
searches for the same query are served from an in-memory cache.

Examples:
  readctl search the pragmatic programmer
  readctl search "structure and interpretation"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			ctx, cancel := opCtx()
			defer cancel()

			// Load the library first so saved results can be marked.
			if err := lib.Fetch(ctx); err != nil {
				warn("could not load library: results won't show saved marks")
			}

			items, err := cat.Search(ctx, query)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No results.")
				return nil
			}

			header("Results for %q", query)
			for i, item := range items {
				printSearchResult(i+1, item, lib.IsInLibrary(item.ID))
			}
			fmt.Println()
			fmt.Printf("Save one with: %s\n", color.CyanString("readctl save %q --index N", query))
			return nil
		},
	}

	return cmd
}

func printSearchResult(n int, item catalog.Item, saved bool) {
	mark := " "
	if saved {
		mark = color.GreenString("✓")
	}
	fmt.Printf("%s %2d. %s — %s\n", mark, n, color.New(color.Bold).Sprint(item.Title),
		strings.Join(item.Authors, ", "))
	fmt.Printf("      %s · %s · %s\n",
		color.CyanString(item.ID), item.Publisher, item.PublishedDate)
}
