package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration. Credentials are not part of
// it; they go through the resolver chain so edits take effect per lookup.
type Config struct {
	Env string `mapstructure:"env" validate:"oneof=development production"`

	// Keyfile is the NAME=value file scanned by the credential resolver.
	Keyfile string `mapstructure:"keyfile" validate:"required"`

	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" validate:"gt=0"`
	ShutdownGraceMS    int `mapstructure:"shutdown_grace_ms" validate:"gte=0"`

	History   HistoryConfig               `mapstructure:"history"`
	Providers map[string]ProviderSettings `mapstructure:"providers"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ProviderSettings tunes one backend without changing the fallback order.
type ProviderSettings struct {
	Disabled bool   `mapstructure:"disabled"`
	Endpoint string `mapstructure:"endpoint"`

	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
}

// HTTPTimeout returns the per-exchange timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// ShutdownGrace returns how long teardown waits for a run to observe
// cancellation before abandoning it.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceMS) * time.Millisecond
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("autopaint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/autopaint")

	// Default Values
	v.SetDefault("env", "production")
	v.SetDefault("keyfile", ".env")
	v.SetDefault("http_timeout_seconds", 60)
	v.SetDefault("shutdown_grace_ms", 500)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "autopaint.db")

	// Environment Variables (AUTOPAINT_HISTORY_ENABLED etc.)
	v.SetEnvPrefix("autopaint")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
