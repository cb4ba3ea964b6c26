package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")

		cfg := Load()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "memory", cfg.StoreDriver)
		assert.Equal(t, time.Second, cfg.AccountLatency)
		assert.Equal(t, 2*time.Second, cfg.RegisterLatency)
		assert.Equal(t, 10080, cfg.JWTExpiresMin)
		assert.False(t, cfg.UsesRedis())
	})

	t.Run("Should read overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("STORE_DRIVER", "redis")
		t.Setenv("ACCOUNT_LATENCY_MS", "5")
		t.Setenv("LOG_JSON", "true")
		t.Setenv("REDIS_DB", "not-a-number")

		cfg := Load()

		assert.Equal(t, 5*time.Millisecond, cfg.AccountLatency)
		assert.True(t, cfg.LogJSON)
		assert.Equal(t, 0, cfg.RedisDB)
		assert.True(t, cfg.UsesRedis())
	})

	t.Run("Should panic without a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		assert.Panics(t, func() { Load() })
	})

	t.Run("Should require a DSN for postgres", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("DB_DSN", "")
		assert.Panics(t, func() { Load() })
	})
}
