package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DB", "POSTGRES_DSN",
		"REDIS_ADDR", "REDIS_PASSWORD", "TOKEN_TTL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", c.Port)
	assert.Equal(t, DriverMongo, c.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "mentor_sessions", c.MongoDB)
	assert.Equal(t, "", c.RedisAddr)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
}

func TestFromEnv_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8081", c.Port)
	assert.Equal(t, DriverMemory, c.StoreDriver)
	assert.Equal(t, 15*time.Minute, c.TokenTTL)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
}

func TestFromEnv_BadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"postgres without dsn", map[string]string{"STORE_DRIVER": "postgres"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "forever"}},
		{"negative ttl", map[string]string{"TOKEN_TTL": "-1m"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "k")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
