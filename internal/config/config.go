package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config captures environment driven configuration values for the
// reservation service.
type Config struct {
	HTTPPort   int           `env:"RESERVAS_HTTP_PORT" env-default:"8080"`
	SQLiteDSN  string        `env:"RESERVAS_SQLITE_DSN" env-default:"file:reservas.db?_pragma=foreign_keys(1)"`
	SessionTTL time.Duration `env:"RESERVAS_SESSION_TTL" env-default:"24h"`
}

// Load reads configuration from the current process environment, applying
// defaults for unset values.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("RESERVAS_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("RESERVAS_SESSION_TTL must be positive: %s", cfg.SessionTTL)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
