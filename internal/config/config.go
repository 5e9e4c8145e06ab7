// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/flight-finder/internal/adapter/notify"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Config holds all application configuration.
type Config struct {
	Tequila TequilaConfig
	Cache   CacheConfig
	Notify  notify.Config
	Logging logger.Config
	App     AppConfig
}

// TequilaConfig holds the flight API settings.
type TequilaConfig struct {
	APIKey        string        `env:"TEQUILA_API_KEY"`
	BaseURL       string        `env:"TEQUILA_BASE_URL" envDefault:"https://tequila-api.kiwi.com"`
	Timeout       time.Duration `env:"TEQUILA_TIMEOUT" envDefault:"30s"`
	SearchTimeout time.Duration `env:"SEARCH_TIMEOUT" envDefault:"60s"`

	// Currency and Limit are passed to every search when set
	Currency string `env:"TEQUILA_CURRENCY"`
	Limit    int    `env:"TEQUILA_LIMIT" envDefault:"0"`

	// RateLimit is requests per second per endpoint; 0 disables limiting
	RateLimit float64 `env:"TEQUILA_RATE_LIMIT" envDefault:"5"`
	RateBurst int     `env:"TEQUILA_RATE_BURST" envDefault:"5"`
}

// CacheConfig holds the location-code cache settings.
// An empty RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"168h"`
}

// Enabled reports whether a Redis cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"production"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Without LOG_LEVEL, development runs log at debug level.
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = logger.DefaultConfig().Level
		if cfg.IsDevelopment() {
			cfg.Logging.Level = "debug"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// validate checks configuration values for correctness, one section at a time.
func validate(cfg *Config) error {
	t := &cfg.Tequila
	if err := validation.ValidateStruct(t,
		validation.Field(&t.APIKey, validation.Required.Error("TEQUILA_API_KEY is required")),
		validation.Field(&t.BaseURL, validation.Required, is.URL),
		validation.Field(&t.Timeout, validation.Min(time.Millisecond).Error("TEQUILA_TIMEOUT must be positive")),
		validation.Field(&t.SearchTimeout, validation.Min(time.Millisecond).Error("SEARCH_TIMEOUT must be positive")),
		validation.Field(&t.Currency, validation.Length(3, 3), is.UpperCase),
		validation.Field(&t.Limit, validation.Min(0)),
		validation.Field(&t.RateLimit, validation.Min(0.0)),
		validation.Field(&t.RateBurst, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("tequila: %w", err)
	}

	c := &cfg.Cache
	if err := validation.ValidateStruct(c,
		validation.Field(&c.RedisDB, validation.Min(0)),
		validation.Field(&c.TTL, validation.When(c.Enabled(), validation.Min(time.Second).Error("CACHE_TTL must be at least 1s"))),
	); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	n := &cfg.Notify
	if err := validation.ValidateStruct(n,
		validation.Field(&n.Provider, validation.In(notify.ProviderSMTP, notify.ProviderResend, notify.ProviderLog).
			Error("NOTIFY_PROVIDER must be one of: smtp, resend, log")),
		validation.Field(&n.From, validation.Required, is.EmailFormat),
		validation.Field(&n.MaxAttempts, validation.Min(1).Error("NOTIFY_MAX_ATTEMPTS must be at least 1")),
		validation.Field(&n.ResendAPIKey, validation.When(n.Provider == notify.ProviderResend,
			validation.Required.Error("RESEND_API_KEY is required for the resend provider"))),
	); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	s := &cfg.Notify.SMTP
	if n.Provider == notify.ProviderSMTP {
		if err := validation.ValidateStruct(s,
			validation.Field(&s.Host, validation.Required.Error("SMTP_HOST is required for the smtp provider")),
			validation.Field(&s.Port, validation.Min(1), validation.Max(65535)),
			validation.Field(&s.Timeout, validation.Min(time.Millisecond)),
		); err != nil {
			return fmt.Errorf("smtp: %w", err)
		}
	}

	l := &cfg.Logging
	if err := validation.ValidateStruct(l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error").
			Error("LOG_LEVEL must be one of: debug, info, warn, error")),
		validation.Field(&l.Format, validation.In("json", "console").
			Error("LOG_FORMAT must be one of: json, console")),
		validation.Field(&l.FileMaxSizeMB, validation.Min(1)),
		validation.Field(&l.FileMaxBackups, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if err := validation.Validate(cfg.App.Env, validation.In("development", "staging", "production").
		Error("APP_ENV must be one of: development, staging, production")); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
