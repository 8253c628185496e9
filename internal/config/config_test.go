package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/readctl/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("READCTL_CONFIG", filepath.Join(t.TempDir(), "config.yml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SignedIn() {
		t.Error("fresh config reports a signed-in user")
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Store.RedisAddr)
	}
	if cfg.Store.EffectiveCollection() != "books" {
		t.Errorf("EffectiveCollection = %q", cfg.Store.EffectiveCollection())
	}
	if cfg.Catalog.RPS != 5 {
		t.Errorf("RPS = %d, want 5", cfg.Catalog.RPS)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	t.Setenv("READCTL_CONFIG", path)

	in := &config.Config{}
	in.User.ID = "u-cafe0123"
	in.Store.Backend = "memory"
	in.Store.RedisAddr = "redis.example:6380"
	in.Store.RedisDB = 3
	in.Store.Collection = "shelf"
	in.Catalog.APIBase = "http://books.example/volumes"
	in.Catalog.KeyEnv = "MY_KEY"
	in.Catalog.RPS = 2

	if err := config.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.User.ID != "u-cafe0123" || !out.SignedIn() {
		t.Errorf("User.ID = %q", out.User.ID)
	}
	if out.Store.Backend != "memory" || out.Store.RedisAddr != "redis.example:6380" || out.Store.RedisDB != 3 {
		t.Errorf("store config = %+v", out.Store)
	}
	if out.Store.EffectiveCollection() != "shelf" {
		t.Errorf("EffectiveCollection = %q", out.Store.EffectiveCollection())
	}
	if out.Catalog.APIBase != "http://books.example/volumes" || out.Catalog.RPS != 2 {
		t.Errorf("catalog config = %+v", out.Catalog)
	}
}

func TestSecretsComeFromEnvOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	t.Setenv("READCTL_CONFIG", path)
	t.Setenv("MY_KEY", "book-api-secret")
	t.Setenv("READCTL_REDIS_PASSWORD", "redis-secret")

	in := &config.Config{}
	in.User.ID = "u-1"
	in.Catalog.KeyEnv = "MY_KEY"
	if err := config.Save(in); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Catalog.Key != "book-api-secret" {
		t.Errorf("Catalog.Key = %q", cfg.Catalog.Key)
	}
	if cfg.Store.RedisPassword != "redis-secret" {
		t.Errorf("Store.RedisPassword = %q", cfg.Store.RedisPassword)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, secret := range []string{"book-api-secret", "redis-secret"} {
		if strings.Contains(string(raw), secret) {
			t.Errorf("secret %q leaked into the config file", secret)
		}
	}
}
