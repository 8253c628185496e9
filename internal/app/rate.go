package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/spf13/cobra"
)

func newRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate <book> <0-5>",
		Short: "Rate a saved book (0 clears the rating)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be a number %d–%d", library.MinRating, library.MaxRating)
			}
			if err := library.ValidateRating(rating); err != nil {
				return err
			}

			ctx, cancel := opCtx()
			defer cancel()

			book, err := resolveBook(ctx, args[0])
			if err != nil {
				return err
			}
			return lib.UpdateRating(ctx, book.ID, rating)
		},
	}

	return cmd
}
