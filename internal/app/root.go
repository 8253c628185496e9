package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/readctl/internal/catalog"
	"github.com/blackwell-systems/readctl/internal/config"
	"github.com/blackwell-systems/readctl/internal/docstore"
	"github.com/blackwell-systems/readctl/internal/identity"
	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/blackwell-systems/readctl/internal/notify"
	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	store   docstore.Store
	session *identity.Session
	lib     *library.Library
	cat     *catalog.Client

	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "readctl",
	Short: "Track your reading: search the book catalog, save and rate books",
	Long: `readctl keeps a personal reading library in a remote document store.

Search the Google Books catalog, save books, move them between
want-to-read / reading / read, rate them, and keep notes. With the redis
backend the library syncs live: run 'readctl watch' in another terminal
and watch changes land as they happen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initColor()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// init and version run without a configured user.
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		if !cfg.SignedIn() {
			return fmt.Errorf("no user configured — run 'readctl init' first")
		}

		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		session = identity.NewSession(cfg.User.ID)
		lib = library.New(store, session, notify.CLI{}, cfg.Store.EffectiveCollection())
		cat = catalog.NewClient(cfg.Catalog.APIBase, cfg.Catalog.Key, cfg.Catalog.RPS)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newSearchCmd(),
		newSaveCmd(),
		newListCmd(),
		newStatusCmd(),
		newRateCmd(),
		newNotesCmd(),
		newRemoveCmd(),
		newStatsCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
}

// openStore builds the configured document store backend.
func openStore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store.Backend {
	case "redis", "":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Store.RedisAddr, err)
		}
		return docstore.NewRedis(rdb), nil
	case "memory":
		// No persistence across invocations; useful for trying the tool
		// out and for the watch demo.
		return docstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want redis or memory)", cfg.Store.Backend)
	}
}

// initColor disables colored output when asked to or when stdout is not
// a terminal.
func initColor() {
	if flagNoColor || !stdoutIsTTY() {
		color.NoColor = true
	}
}

func stdoutIsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// opCtx bounds a single remote operation.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
