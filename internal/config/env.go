package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment.
type Env struct {
	User    string `env:"TYPEXAM_USER"`
	DBPath  string `env:"TYPEXAM_DB_PATH"`
	Debug   bool   `env:"TYPEXAM_DEBUG"`
	LogFile string `env:"TYPEXAM_LOG_FILE"`
}

// LoadEnv parses TYPEXAM_* variables.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DatabasePath returns the configured database path or the XDG default.
func (e Env) DatabasePath() string {
	if e.DBPath != "" {
		return e.DBPath
	}
	return DefaultDBPath()
}
