package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesTemplateAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("config template not created: %v", err)
	}

	if cfg.Trading.DefaultExchange != "NSE" {
		t.Errorf("DefaultExchange = %q, want NSE", cfg.Trading.DefaultExchange)
	}
	if cfg.Trading.DefaultSegment != "equity-intraday" {
		t.Errorf("DefaultSegment = %q, want equity-intraday", cfg.Trading.DefaultSegment)
	}
	if cfg.Database.Path != filepath.Join(dir, "tradebook.db") {
		t.Errorf("Database.Path = %q, want inside config dir", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadReadsUserConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[trading]
default_exchange = "BSE"
default_segment = "futures"

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Trading.DefaultExchange != "BSE" {
		t.Errorf("DefaultExchange = %q, want BSE", cfg.Trading.DefaultExchange)
	}
	if cfg.Trading.DefaultSegment != "futures" {
		t.Errorf("DefaultSegment = %q, want futures", cfg.Trading.DefaultSegment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if !cfg.UI.ColorEnabled {
		t.Error("UI.ColorEnabled = false, want default true")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADEBOOK_DB_PATH", "/tmp/override.db")
	t.Setenv("TRADEBOOK_LOG_LEVEL", "warn")
	t.Setenv("TRADEBOOK_EXCHANGE", "BSE")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Trading.DefaultExchange != "BSE" {
		t.Errorf("DefaultExchange = %q, want BSE", cfg.Trading.DefaultExchange)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad exchange", func(c *Config) { c.Trading.DefaultExchange = "NYSE" }, true},
		{"bad segment", func(c *Config) { c.Trading.DefaultSegment = "crypto" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"empty fields allowed", func(c *Config) {
			c.Trading.DefaultExchange = ""
			c.Trading.DefaultSegment = ""
			c.Logging.Level = ""
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Trading: TradingConfig{DefaultExchange: "NSE", DefaultSegment: "options"},
				Logging: LoggingConfig{Level: "info"},
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate: expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
