// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevJWTSecret is used when SANTA_JWT_SECRET is unset. It is only fit for
// local development.
const DevJWTSecret = "secret-santa-dev-only"

// Config holds the server settings.
type Config struct {
	Port        int           `env:"SANTA_PORT"         envDefault:"8080"`
	DBPath      string        `env:"SANTA_DB_PATH"      envDefault:"./data/santa.db"`
	BaseURL     string        `env:"SANTA_BASE_URL"     envDefault:"http://localhost:8080/"`
	JWTSecret   string        `env:"SANTA_JWT_SECRET"`
	TokenTTL    time.Duration `env:"SANTA_TOKEN_TTL"    envDefault:"24h"`
	MaxAttempts int           `env:"SANTA_MAX_ATTEMPTS" envDefault:"100"`
	LogLevel    string        `env:"SANTA_LOG_LEVEL"    envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UsingDevSecret reports whether no JWT secret was configured.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == DevJWTSecret
}

// Secret returns the JWT signing secret, falling back to DevJWTSecret.
func (c Config) Secret() string {
	if c.JWTSecret == "" {
		return DevJWTSecret
	}
	return c.JWTSecret
}

// Validate checks ranges the env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("SANTA_PORT out of range: %d", c.Port))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("SANTA_MAX_ATTEMPTS must be positive: %d", c.MaxAttempts))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("SANTA_TOKEN_TTL must be positive: %s", c.TokenTTL))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("SANTA_BASE_URL is required"))
	}
	return errors.Join(errs...)
}
