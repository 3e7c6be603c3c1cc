// Package config loads environment-level defaults. Explicit CLI flags
// always win over the environment; the environment wins over the
// built-in defaults.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Built-in defaults, overridable through the environment.
const (
	DefaultFolder  = "."
	DefaultFrom    = "*.txt"
	DefaultBackups = 3
)

// Config holds environment-derived defaults for a run.
type Config struct {
	Folder  string
	From    string
	Backups int // rotated backup generations kept, 0 disables
}

// Load reads a .env file if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Folder:  DefaultFolder,
		From:    DefaultFrom,
		Backups: DefaultBackups,
	}

	if v := os.Getenv("SWEEPTEXT_FOLDER"); v != "" {
		cfg.Folder = v
	}
	if v := os.Getenv("SWEEPTEXT_FROM"); v != "" {
		cfg.From = v
	}
	if v := os.Getenv("SWEEPTEXT_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Backups = n
		}
	}

	return cfg
}
