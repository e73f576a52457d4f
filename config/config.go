// Package config reads process settings from the environment and an optional .env file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	Store      string `env:"PROMPT_STORE" envDefault:"file"`
	DataFile   string `env:"PROMPT_DATA_FILE" envDefault:"data/prompts.json"`
	SQLitePath string `env:"PROMPT_SQLITE_PATH" envDefault:"data/prompts.db"`

	// ClipboardRetries is how many extra attempts a failed clipboard write gets.
	ClipboardRetries int `env:"PROMPT_CLIPBOARD_RETRIES" envDefault:"2"`

	// SystemDark overrides terminal background detection when set.
	SystemDark *bool `env:"PROMPT_THEME_SYSTEM_DARK"`
}

// Load reads .env from the working directory if present, then the environment.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.DataFile == "" {
			return fmt.Errorf("PROMPT_DATA_FILE is required for the file store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("PROMPT_SQLITE_PATH is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown PROMPT_STORE %q (want file, sqlite or memory)", c.Store)
	}
	if c.ClipboardRetries < 0 {
		return fmt.Errorf("PROMPT_CLIPBOARD_RETRIES must not be negative")
	}
	return nil
}
