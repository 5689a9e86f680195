package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("default backend = %s", cfg.DataBackend)
	}
	if cfg.ReconcileInterval != 5*time.Minute {
		t.Fatalf("default reconcile interval = %v", cfg.ReconcileInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", t.TempDir()+"/app.db")
	t.Setenv("RECONCILE_INTERVAL", "90s")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DataBackend != "sqlite" {
		t.Fatalf("env not honored: %+v", cfg)
	}
	if cfg.ReconcileInterval != 90*time.Second {
		t.Fatalf("interval = %v", cfg.ReconcileInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid env rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"bad port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"mysql without dsn", func(c *Config) { c.DataBackend = "mysql" }, "MYSQL_DSN is required"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://broker" }, "invalid AMQP URL scheme"},
		{"mirror equals primary", func(c *Config) { c.MirrorBackend = "memory" }, "mirror backend must differ"},
		{"short interval", func(c *Config) { c.ReconcileInterval = time.Millisecond }, "reconcile interval"},
	}
	for _, tc := range cases {
		cfg := Load()
		tc.mut(cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: got %v, want substring %q", tc.name, err, tc.want)
		}
	}
}
