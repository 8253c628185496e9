package config

// Config is the top-level readctl configuration.
type Config struct {
	User    UserConfig    `mapstructure:"user"`
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// UserConfig identifies the library owner. The id is an opaque stable
// string; `readctl init` generates one.
type UserConfig struct {
	ID string `mapstructure:"id"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Backend    string `mapstructure:"backend"` // "redis" or "memory"
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisDB    int    `mapstructure:"redis_db"`
	Collection string `mapstructure:"collection"`

	// RedisPassword is resolved from the environment at load time and
	// never written to the config file.
	RedisPassword string `mapstructure:"-"`
}

// CatalogConfig configures the external book-search API.
type CatalogConfig struct {
	APIBase string `mapstructure:"api_base"`
	KeyEnv  string `mapstructure:"key_env"`
	RPS     int    `mapstructure:"rps"`

	// Key is resolved from KeyEnv at load time, never stored.
	Key string `mapstructure:"-"`
}

// SignedIn reports whether a user id is configured.
func (c *Config) SignedIn() bool {
	return c.User.ID != ""
}

// EffectiveCollection returns the configured collection or the default.
func (s *StoreConfig) EffectiveCollection() string {
	if s.Collection != "" {
		return s.Collection
	}
	return "books"
}
