package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Path != "inventory.json" {
		t.Errorf("store.path = %q, want inventory.json", cfg.Store.Path)
	}
	if cfg.Store.LowStockThreshold != inventory.DefaultLowStockThreshold {
		t.Errorf("store.low_stock_threshold = %d, want %d", cfg.Store.LowStockThreshold, inventory.DefaultLowStockThreshold)
	}
	if cfg.Logger.Format != "json" || cfg.Logger.Level != "info" || cfg.Logger.Output != "stderr" {
		t.Errorf("logger = %+v", cfg.Logger)
	}
	if cfg.App.Name != "inventory" || cfg.Metrics.Output != "" {
		t.Errorf("app = %+v, metrics = %+v", cfg.App, cfg.Metrics)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INVENTORY_FILE", "/var/lib/inventory/stock.json")
	t.Setenv("LOW_STOCK_THRESHOLD", "12")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("METRICS_OUTPUT", "metrics.prom")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Path != "/var/lib/inventory/stock.json" || cfg.Store.LowStockThreshold != 12 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Logger.Format != "console" || cfg.Metrics.Output != "metrics.prom" {
		t.Errorf("logger = %+v, metrics = %+v", cfg.Logger, cfg.Metrics)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	envFile := filepath.Join(dir, "inventory.env")
	if err := os.WriteFile(envFile, []byte("APP_ENVIRONMENT=staging\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// godotenv never overrides variables that are already set; make sure
	// the variable is restored and unset for the duration of the test.
	t.Setenv("APP_ENVIRONMENT", "")
	os.Unsetenv("APP_ENVIRONMENT")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Environment != "staging" {
		t.Errorf("app.environment = %q, want staging", cfg.App.Environment)
	}
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:  StoreConfig{Path: "inventory.json", LowStockThreshold: 5},
			Logger: LoggerConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty path", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: "store path"},
		{name: "negative threshold", mutate: func(c *Config) { c.Store.LowStockThreshold = -1 }, wantErr: "threshold"},
		{name: "unknown format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	var nilCfg *Config
	if nilCfg.Validate() == nil {
		t.Fatal("Validate() on nil config must fail")
	}
}
