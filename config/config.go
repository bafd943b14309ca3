package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the banking server
type Config struct {
	// HTTP listen address
	HTTPAddr string `mapstructure:"http_addr"`

	// Postgres URL for the operations journal; empty keeps it in memory
	DatabaseURL string `mapstructure:"database_url"`

	// Register the demo banks and clients at startup
	SeedDemo bool `mapstructure:"seed_demo"`

	// Run both batch sweeps this often (0 = only on demand)
	AccrualInterval time.Duration `mapstructure:"accrual_interval"`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		DatabaseURL:     "",
		SeedDemo:        false,
		AccrualInterval: 0,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads configuration from BANKING_* environment variables
func Load() (*Config, error) {
	v := viper.New()
	cfg := DefaultConfig()

	v.SetEnvPrefix("banking")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", cfg.HTTPAddr)
	v.SetDefault("database_url", cfg.DatabaseURL)
	v.SetDefault("seed_demo", cfg.SeedDemo)
	v.SetDefault("accrual_interval", cfg.AccrualInterval)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	if c.HTTPAddr == "" {
		errs = append(errs, "http_addr must not be empty")
	}
	if c.AccrualInterval < 0 {
		errs = append(errs, "accrual_interval must be non-negative")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "shutdown_timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
