package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrMissingSecret is returned by Validate when JWT_SECRET is unset.
var ErrMissingSecret = errors.New("JWT_SECRET is required")

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	StoreDriver   string
	MongoURI      string
	MongoDB       string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	TokenTTL      time.Duration
	LogLevel      slog.Level
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "5000"),
		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "mentor_sessions"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		JWTSecret:     getenv("JWT_SECRET", ""),
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	switch c.StoreDriver {
	case DriverMongo, DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
