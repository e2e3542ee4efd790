// Package config loads process configuration from the environment once at
// startup. The resulting struct is treated as immutable and passed by
// injection; nothing else in the repo reads environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all external configuration for the server.
type Config struct {
	Addr        string        `env:"ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"DATABASE_DSN"`
	JWTSecret   string        `env:"JWT_SECRET"`
	AccessTTL   time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	Env         string        `env:"ENV" envDefault:"development"`
}

// Load parses and validates configuration. A missing signing secret or DSN is
// a startup-fatal condition, never a per-request one.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		return Config{}, errors.New("missing required environment variable: DATABASE_DSN")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("missing required environment variable: JWT_SECRET")
	}
	return cfg, nil
}

// Production reports whether production-mode hardening (secure cookies) applies.
func (c Config) Production() bool { return c.Env == "production" }
