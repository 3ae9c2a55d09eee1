// Package config loads runtime settings from the environment into a single
// Config value that the rest of the application receives by injection.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries every tunable the server reads at startup.
type Config struct {
	// HTTP server
	Host string
	Port string
	Env  string // development, production, or testing

	// PostgreSQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Bearer token issuance
	AuthSecret string // HMAC signing key
	TokenTTL   time.Duration
}

// Load builds a Config from environment variables. Development gets
// permissive defaults; production refuses to start with placeholder
// credentials.
func Load() (*Config, error) {
	cfg := &Config{
		Host: getenv("APP_HOST", "0.0.0.0"),
		Port: getenv("APP_PORT", "8080"),
		Env:  getenv("APP_ENV", "development"),

		DBHost:     getenv("POSTGRES_HOST", "localhost"),
		DBPort:     getenv("POSTGRES_PORT", "5432"),
		DBUser:     getenv("POSTGRES_USER", "jacms"),
		DBPassword: getenv("POSTGRES_PASSWORD", "changeme"),
		DBName:     getenv("POSTGRES_DB", "jacms"),

		ValkeyHost:     getenv("VALKEY_HOST", "localhost"),
		ValkeyPort:     getenv("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AuthSecret: getenv("AUTH_SECRET", "dev-secret"),
		TokenTTL:   24 * time.Hour,
	}

	if ttl := os.Getenv("AUTH_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AuthSecret == "dev-secret" {
			return nil, fmt.Errorf("AUTH_SECRET must be set in production")
		}
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// IsDev reports whether the app runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
