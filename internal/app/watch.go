package app

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/blackwell-systems/readctl/internal/notify"
	"github.com/blackwell-systems/readctl/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch your library live",
		Long: `Open a full-screen view of the library fed by the store's change
subscription. Saves, ratings and removals made from other terminals (or
other machines sharing the backend) appear as they happen.

Keys: r refreshes manually, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A dedicated library instance with a silent notifier: inside
			// the alt screen the CLI notifier would scribble over the
			// view. Errors surface through the retained last-error line.
			watchLib := library.New(store, session, notify.Nop{}, cfg.Store.EffectiveCollection())
			if err := watchLib.Start(context.Background()); err != nil {
				return fmt.Errorf("starting library sync: %w", err)
			}
			defer watchLib.Close()

			model := tui.NewWatch(watchLib, func() {
				go func() {
					ctx, cancel := opCtx()
					defer cancel()
					_ = watchLib.Fetch(ctx)
				}()
			})

			p := tea.NewProgram(model, tea.WithAltScreen())
			cancel := watchLib.OnChange(func() {
				p.Send(tui.LibraryChangedMsg{})
			})
			defer cancel()

			_, err := p.Run()
			return err
		},
	}

	return cmd
}
