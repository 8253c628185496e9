package app

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics: totals, statuses, categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx()
			defer cancel()
			if err := lib.Fetch(ctx); err != nil {
				return err
			}

			books := lib.Books()
			header("Library: %d books", len(books))

			byStatus := map[library.Status]int{}
			rated := 0
			ratingSum := 0
			for _, b := range books {
				byStatus[b.Status]++
				if b.Rating > 0 {
					rated++
					ratingSum += b.Rating
				}
			}
			for _, s := range []library.Status{library.StatusWantToRead, library.StatusReading, library.StatusRead} {
				fmt.Printf("  %-13s %d\n", s, byStatus[s])
			}
			if rated > 0 {
				fmt.Printf("  avg rating    %.1f (%d rated)\n", float64(ratingSum)/float64(rated), rated)
			}

			counts := lib.CategoryCounts()
			if len(counts) == 0 {
				return nil
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				if counts[names[i]] != counts[names[j]] {
					return counts[names[i]] > counts[names[j]]
				}
				return names[i] < names[j]
			})

			fmt.Println()
			header("Categories")
			for _, name := range names {
				fmt.Printf("  %3d  %s\n", counts[name], color.CyanString(name))
			}
			return nil
		},
	}

	return cmd
}
