// Package config loads the CLI environment configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the process-level settings. Command flags override these.
type Config struct {
	// DBPath is the SQLite file backing the override store.
	DBPath string `env:"DZFISC_DB_PATH" envDefault:"dzfisc.db"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"DZFISC_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
