package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 8080 {
			t.Fatalf("unexpected port: %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:reservas.db?_pragma=foreign_keys(1)" {
			t.Fatalf("unexpected dsn: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionTTL != 24*time.Hour {
			t.Fatalf("unexpected ttl: %s", cfg.SessionTTL)
		}
		if cfg.Addr() != ":8080" {
			t.Fatalf("unexpected addr: %q", cfg.Addr())
		}
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("RESERVAS_HTTP_PORT", "9090")
		t.Setenv("RESERVAS_SQLITE_DSN", "file::memory:")
		t.Setenv("RESERVAS_SESSION_TTL", "30m")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 9090 || cfg.SQLiteDSN != "file::memory:" || cfg.SessionTTL != 30*time.Minute {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		t.Setenv("RESERVAS_HTTP_PORT", "70000")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for out-of-range port")
		}
	})

	t.Run("rejects non-positive session ttl", func(t *testing.T) {
		t.Setenv("RESERVAS_SESSION_TTL", "-1h")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for negative ttl")
		}
	})
}
