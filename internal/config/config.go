package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-inventory/internal/infrastructure/jsonfile"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the inventory CLI.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Store   StoreConfig   `mapstructure:"store"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig identifies the process in logs.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// StoreConfig locates the data file and sets the low-stock threshold.
type StoreConfig struct {
	Path              string `mapstructure:"path"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig names the file the metrics exposition is written to on exit.
// Empty disables the dump.
type MetricsConfig struct {
	Output string `mapstructure:"output"`
}

// Load reads an optional env file (".env" when envFile is empty), then the
// environment, on top of the defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// Load .env file if it exists (ignore errors)
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "inventory")
	v.SetDefault("app.environment", "dev")

	v.SetDefault("store.path", jsonfile.DefaultPath)
	v.SetDefault("store.low_stock_threshold", inventory.DefaultLowStockThreshold)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stderr")

	v.SetDefault("metrics.output", "")
}

func bindEnvVars(v *viper.Viper) error {
	bindings := map[string]string{
		"app.name":                  "APP_NAME",
		"app.environment":           "APP_ENVIRONMENT",
		"store.path":                "INVENTORY_FILE",
		"store.low_stock_threshold": "LOW_STOCK_THRESHOLD",
		"logger.level":              "LOG_LEVEL",
		"logger.format":             "LOG_FORMAT",
		"logger.output":             "LOG_OUTPUT",
		"metrics.output":            "METRICS_OUTPUT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Store.Path == "" {
		return errors.New("store path must not be empty")
	}
	if c.Store.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative, got %d", c.Store.LowStockThreshold)
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.Logger.Format)
	}
	return nil
}
