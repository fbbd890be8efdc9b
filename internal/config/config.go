package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"

	"ticclub/internal/domain/registration"
)

// EnvProduction is the TIC_ENV value that enables production hardening.
const EnvProduction = "production"

// Config is the process configuration, read from TIC_* environment variables.
type Config struct {
	Env  string `env:"TIC_ENV" envDefault:"development"`
	Addr string `env:"TIC_ADDR" envDefault:":8080"`

	AdminEmail    string `env:"TIC_ADMIN_EMAIL" envDefault:"admin@ticclub.in"`
	AdminPassword string `env:"TIC_ADMIN_PASSWORD" envDefault:"tic-admin-2025"`

	// ForwardURL receives every accepted registration. Empty disables forwarding.
	ForwardURL     string        `env:"TIC_FORWARD_URL"`
	ForwardTimeout time.Duration `env:"TIC_FORWARD_TIMEOUT" envDefault:"15s"`

	// DBPath selects the SQLite store. Empty keeps registrations in process memory only.
	DBPath     string   `env:"TIC_DB_PATH"`
	Timezone   string   `env:"TIC_TIMEZONE" envDefault:"Asia/Kolkata"`
	SeedSample *bool    `env:"TIC_SEED_SAMPLE"`
	Positions  []string `env:"TIC_POSITIONS" envSeparator:"|"`

	ResendKey  string   `env:"TIC_RESEND_KEY"`
	ResendFrom string   `env:"TIC_RESEND_FROM" envDefault:"TIC Club <noreply@ticclub.in>"`
	NotifyTo   []string `env:"TIC_NOTIFY_TO" envSeparator:","`

	CSRFKey        string        `env:"TIC_CSRF_KEY"`
	MetricsAddr    string        `env:"TIC_METRICS_ADDR"`
	LogLevel       string        `env:"TIC_LOG_LEVEL" envDefault:"info"`
	RateLimit      int           `env:"TIC_RATE_LIMIT" envDefault:"10"`
	SlowRequest    time.Duration `env:"TIC_SLOW_REQUEST" envDefault:"200ms"`
	SlowQuery      time.Duration `env:"TIC_SLOW_QUERY" envDefault:"50ms"`
	TrustedOrigins []string      `env:"TIC_TRUSTED_ORIGINS" envSeparator:"," envDefault:"localhost:8080,127.0.0.1:8080"`
	FormIntro      string        `env:"TIC_FORM_INTRO"`

	location *time.Location
}

// Load parses the environment into a Config and validates it.
// PRE: godotenv (if used) has already populated the environment
// POST: Returns a validated Config or an error naming the bad variable
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

// Validate checks cross-field rules and resolves the time zone.
func (c *Config) Validate() error {
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return errors.New("TIC_ADMIN_EMAIL and TIC_ADMIN_PASSWORD must be set")
	}
	if c.CSRFKey != "" {
		key, err := hex.DecodeString(c.CSRFKey)
		if err != nil || len(key) != 32 {
			return errors.New("TIC_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
	} else if c.IsProduction() {
		return errors.New("TIC_CSRF_KEY is required in production")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("TIC_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.location = loc
	if c.RateLimit <= 0 {
		return errors.New("TIC_RATE_LIMIT must be positive")
	}
	return nil
}

// IsProduction reports whether TIC_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location returns the resolved display time zone.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ShouldSeedSample reports whether demo registrations are loaded at startup.
// Defaults to true outside production.
func (c Config) ShouldSeedSample() bool {
	if c.SeedSample != nil {
		return *c.SeedSample
	}
	return !c.IsProduction()
}

// PositionCatalog returns the configured positions or the default catalog.
func (c Config) PositionCatalog() []string {
	var out []string
	for _, p := range c.Positions {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return registration.DefaultPositions
	}
	return out
}

// CSRFKeyBytes decodes the configured key. It returns nil when no key is set.
func (c Config) CSRFKeyBytes() []byte {
	if c.CSRFKey == "" {
		return nil
	}
	key, _ := hex.DecodeString(c.CSRFKey)
	return key
}

// SlogLevel maps TIC_LOG_LEVEL onto a slog level.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
