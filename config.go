package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sauerbraten/jsonfile"
)

type Config struct {
	Addr         string `json:"addr"`
	DBPath       string `json:"db_path"`
	Secret       string `json:"secret"`
	TokenTTL     string `json:"token_ttl"`
	HistoryLimit int    `json:"history_limit"`

	tokenTTL time.Duration
}

func defaultConfig() Config {
	return Config{
		Addr:         ":8080",
		DBPath:       "vectors.db",
		TokenTTL:     "24h",
		HistoryLimit: 20,
	}
}

// loadConfig parses a JSON file (// comments allowed) over the defaults.
// An empty path yields the defaults. The result still needs validate.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		if err := jsonfile.ParseFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// secretEnv overrides the config file's secret, keeping it off the command line.
const secretEnv = "VECTOR_SECRET"

func (c *Config) applyEnv() {
	if secret := os.Getenv(secretEnv); secret != "" {
		c.Secret = secret
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("config: history_limit must be positive, got %d", c.HistoryLimit)
	}

	ttl, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("config: token_ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("config: token_ttl must be positive, got %s", c.TokenTTL)
	}
	c.tokenTTL = ttl

	return nil
}
