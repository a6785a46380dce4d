package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.SQLiteDBPath != "./data/financeiro.db" {
		t.Errorf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
	}
	if cfg.AssistTimeout != 5*time.Second {
		t.Errorf("AssistTimeout = %v, want 5s", cfg.AssistTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("ASSIST_TIMEOUT", "10s")

	cfg := Load()
	if cfg.Port != "9000" || cfg.Backend != "memory" || cfg.AssistTimeout != 10*time.Second {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:          "8081",
			Backend:       "memory",
			ReportDir:     "./reports",
			AssistTimeout: 5 * time.Second,
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "web" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.Backend = "postgres" }, "invalid data backend"},
		{"empty report dir", func(c *Config) { c.ReportDir = "" }, "report directory"},
		{"timeout too small", func(c *Config) { c.AssistTimeout = time.Millisecond }, "assist timeout"},
		{"timeout too large", func(c *Config) { c.AssistTimeout = time.Hour }, "assist timeout"},
		{"sqlite without path", func(c *Config) { c.Backend = "sqlite"; c.SQLiteDBPath = "" }, "database path"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
