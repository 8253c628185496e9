package app

import (
	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <book> <want-to-read|reading|read>",
		Short: "Move a saved book to another reading state",
		Long: `Set a saved book's reading status.

<book> is a record id (as printed by 'readctl list'), a unique id
prefix, or a catalog id.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := library.ParseStatus(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := opCtx()
			defer cancel()

			book, err := resolveBook(ctx, args[0])
			if err != nil {
				return err
			}
			return lib.UpdateStatus(ctx, book.ID, status)
		},
	}

	return cmd
}
