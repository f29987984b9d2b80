package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "DATABASE_URL", "PORT", "CACHE_ENABLED", "ALLOWED_ORIGINS", "TOKEN_TTL", "DB_MAX_OPEN_CONNS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("TOKEN_TTL", "90m")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 7, cfg.RateLimitBurst)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresDB:       "balatro",
	}
	assert.Equal(t, "postgres://u:p@db:5433/balatro?sslmode=disable", cfg.GetDatabaseURL())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.GetDatabaseURL())
}
