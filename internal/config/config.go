// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every tunable of the server.
type Config struct {
	Port    string `env:"PORT"     envDefault:"8080"`
	Env     string `env:"ENV"`
	GinMode string `env:"GIN_MODE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SessionTimeout time.Duration `env:"SESSION_TIMEOUT"  envDefault:"2h"`
	CookieMaxAge   time.Duration `env:"COOKIE_MAX_AGE"   envDefault:"2h"`
	StaticCacheAge time.Duration `env:"STATIC_CACHE_AGE" envDefault:"5m"`
	RateLimitRPS   int           `env:"RATE_LIMIT_RPS"   envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`

	SettleDelay       time.Duration `env:"SETTLE_DELAY"       envDefault:"1500ms"`
	AdvanceDelay      time.Duration `env:"ADVANCE_DELAY"      envDefault:"2500ms"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`

	APIKey    string `env:"API_KEY"`
	AIBaseURL string `env:"AI_BASE_URL"`
	AIModel   string `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

var errInvalid = errors.New("invalid configuration")

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.RateLimitRPS <= 0:
		return fmt.Errorf("%w: RATE_LIMIT_RPS must be positive, got %d", errInvalid, c.RateLimitRPS)
	case c.RateLimitBurst <= 0:
		return fmt.Errorf("%w: RATE_LIMIT_BURST must be positive, got %d", errInvalid, c.RateLimitBurst)
	case c.SettleDelay <= 0:
		return fmt.Errorf("%w: SETTLE_DELAY must be positive, got %v", errInvalid, c.SettleDelay)
	case c.AdvanceDelay <= 0:
		return fmt.Errorf("%w: ADVANCE_DELAY must be positive, got %v", errInvalid, c.AdvanceDelay)
	case c.GenerationTimeout <= 0:
		return fmt.Errorf("%w: GENERATION_TIMEOUT must be positive", errInvalid)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", errInvalid, err)
	}
	return nil
}

// IsProduction reports whether the server runs in release mode.
func (c Config) IsProduction() bool {
	return c.GinMode == "release" || c.Env == "production"
}

// Level returns the configured log level.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Offline reports whether no AI service is configured.
func (c Config) Offline() bool {
	return c.APIKey == ""
}
