// Package config handles configuration management for salesdash.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesdash.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// CSVPath is the location of the exported purchase-event CSV.
	CSVPath string `mapstructure:"csv_path"`

	// StorePath is the location of the DuckDB warehouse file.
	StorePath string `mapstructure:"store_path"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// GenerateConfig holds configuration for batch generation.
type GenerateConfig struct {
	// Customers is the number of synthetic customers to create.
	Customers int `mapstructure:"customers"`

	// OrdersPerCustomer is the number of orders generated per customer.
	OrdersPerCustomer int `mapstructure:"orders_per_customer"`

	// Seed seeds the random source for reproducible batches (0 = random).
	Seed uint64 `mapstructure:"seed"`
}

// ServeConfig holds configuration for the dashboard server.
type ServeConfig struct {
	// Addr is the listen address for the dashboard.
	Addr string `mapstructure:"addr"`

	// RateLimitRPS is the per-client request rate limit.
	RateLimitRPS float64 `mapstructure:"rate_limit_rps"`

	// RateLimitBurst is the per-client burst allowance.
	RateLimitBurst int `mapstructure:"rate_limit_burst"`

	// ShutdownTimeout is the graceful shutdown window in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		CSVPath:   filepath.Join("data", "orders.csv"),
		StorePath: filepath.Join("data", "warehouse.duckdb"),
		Generate: GenerateConfig{
			Customers:         200,
			OrdersPerCustomer: 25,
			Seed:              0,
		},
		Serve: ServeConfig{
			Addr:            "localhost:8080",
			RateLimitRPS:    20,
			RateLimitBurst:  40,
			ShutdownTimeout: 10,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdash.yaml
// 3. ~/.config/salesdash/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesdash")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdash"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		return fmt.Errorf("csv_path is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if c.Generate.OrdersPerCustomer < 1 {
		return fmt.Errorf("orders_per_customer must be at least 1")
	}
	return nil
}

// ValidateBuild checks configuration required for the build command.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve address is required")
	}
	if c.Serve.RateLimitRPS <= 0 {
		return fmt.Errorf("rate_limit_rps must be positive")
	}
	if c.Serve.RateLimitBurst < 1 {
		return fmt.Errorf("rate_limit_burst must be at least 1")
	}
	return nil
}
