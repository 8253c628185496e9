package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "readctl", "config.yml")
}

// Load reads the config from disk (or env). Returns an empty config if
// no file exists yet — the init command will populate it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("store.backend", "redis")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.collection", "books")
	v.SetDefault("catalog.api_base", "https://www.googleapis.com/books/v1/volumes")
	v.SetDefault("catalog.key_env", "GOOGLE_BOOKS_API_KEY")
	v.SetDefault("catalog.rps", 5)

	v.SetEnvPrefix("READCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("READCTL_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — init creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Secrets come from env only, never the file.
	keyEnv := cfg.Catalog.KeyEnv
	if keyEnv == "" {
		keyEnv = "GOOGLE_BOOKS_API_KEY"
	}
	cfg.Catalog.Key = os.Getenv(keyEnv)
	cfg.Store.RedisPassword = os.Getenv("READCTL_REDIS_PASSWORD")

	return &cfg, nil
}

// Save writes the config to the default path (or READCTL_CONFIG).
func Save(cfg *Config) error {
	path := os.Getenv("READCTL_CONFIG")
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(map[string]any{
		"user": map[string]any{
			"id": cfg.User.ID,
		},
		"store": map[string]any{
			"backend":    cfg.Store.Backend,
			"redis_addr": cfg.Store.RedisAddr,
			"redis_db":   cfg.Store.RedisDB,
			"collection": cfg.Store.Collection,
		},
		"catalog": map[string]any{
			"api_base": cfg.Catalog.APIBase,
			"key_env":  cfg.Catalog.KeyEnv,
			"rps":      cfg.Catalog.RPS,
		},
	})
}
