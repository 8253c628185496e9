package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your saved books, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter library.Status
			if statusFilter != "" {
				s, err := library.ParseStatus(statusFilter)
				if err != nil {
					return err
				}
				filter = s
			}

			ctx, cancel := opCtx()
			defer cancel()
			if err := lib.Fetch(ctx); err != nil {
				return err
			}

			books := lib.Books()
			shown := 0
			for _, b := range books {
				if filter != "" && b.Status != filter {
					continue
				}
				printBook(b)
				shown++
			}
			if shown == 0 {
				if filter != "" {
					fmt.Printf("No books with status %q.\n", filter)
				} else {
					fmt.Println("Library is empty. Save something: readctl save <query>")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show books with this status")

	return cmd
}

func printBook(b library.Book) {
	fmt.Printf("%s %s — %s\n", statusBadge(b.Status),
		color.New(color.Bold).Sprint(b.Title), strings.Join(b.Authors, ", "))
	line := fmt.Sprintf("  %s · %s", color.CyanString(b.ID), stars(b.Rating))
	if !b.AddedAt.IsZero() {
		line += " · added " + b.AddedAt.Format("2006-01-02")
	}
	fmt.Println(line)
	if b.Notes != "" {
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(b.Notes))
	}
}

func statusBadge(s library.Status) string {
	switch s {
	case library.StatusReading:
		return color.YellowString("[reading]")
	case library.StatusRead:
		return color.GreenString("[read]   ")
	default:
		return color.CyanString("[want]   ")
	}
}

func stars(rating int) string {
	if rating == 0 {
		return "unrated"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", library.MaxRating-rating)
}
