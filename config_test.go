package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.HistoryLimit != 20 || cfg.tokenTTL != 24*time.Hour {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
	// listen on loopback only
	"addr": "127.0.0.1:9000",
	"secret": "s3cret // not a comment",
	"token_ttl": "90m"
}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Secret != "s3cret // not a comment" {
		t.Errorf("secret = %q", cfg.Secret)
	}
	if cfg.tokenTTL != 90*time.Minute {
		t.Errorf("token ttl = %v", cfg.tokenTTL)
	}
	if cfg.DBPath != "vectors.db" || cfg.HistoryLimit != 20 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"empty addr":   func(c *Config) { c.Addr = "" },
		"empty db":     func(c *Config) { c.DBPath = "" },
		"zero limit":   func(c *Config) { c.HistoryLimit = 0 },
		"bad ttl":      func(c *Config) { c.TokenTTL = "soon" },
		"negative ttl": func(c *Config) { c.TokenTTL = "-1h" },
	} {
		cfg := defaultConfig()
		mutate(&cfg)
		if err := cfg.validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSecretFromEnv(t *testing.T) {
	cfg := defaultConfig()
	cfg.Secret = "from-file"

	t.Setenv(secretEnv, "")
	cfg.applyEnv()
	if cfg.Secret != "from-file" {
		t.Errorf("empty env replaced secret: %q", cfg.Secret)
	}

	t.Setenv(secretEnv, "from-env")
	cfg.applyEnv()
	if cfg.Secret != "from-env" {
		t.Errorf("secret = %q, want from-env", cfg.Secret)
	}
}
