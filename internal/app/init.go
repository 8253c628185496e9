package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/blackwell-systems/readctl/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		userID    string
		backend   string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the readctl config and a user identity",
		Long: `Write ~/.config/readctl/config.yml with a store backend and a user id.

The user id is the owner key for every saved book. If none is given, a
fresh random one is generated — keep the config file if you care about
your library.

Examples:
  readctl init                              # redis on localhost, new user
  readctl init --backend memory             # no persistence, for trying out
  readctl init --redis-addr 10.0.0.5:6379   # remote redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.SignedIn() && userID == "" {
				warn("config already has user %s; pass --user to replace it", cfg.User.ID)
				return nil
			}
			if userID == "" {
				userID = newUserID()
			}

			cfg.User.ID = userID
			if backend != "" {
				cfg.Store.Backend = backend
			}
			if redisAddr != "" {
				cfg.Store.RedisAddr = redisAddr
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Config written to %s", config.DefaultPath())
			ok("User id: %s", userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id to own the library (default: generated)")
	cmd.Flags().StringVar(&backend, "backend", "", "Store backend: redis or memory (default: redis)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address (default: localhost:6379)")

	return cmd
}

func newUserID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "u-" + hex.EncodeToString(b[:])
}
