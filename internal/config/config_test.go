package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/pethaven")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Nil(t, cfg.ProdOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PROD_ORIGINS", "https://pethaven.app, https://admin.pethaven.app ,")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, []string{"https://pethaven.app", "https://admin.pethaven.app"}, cfg.ProdOrigins)
	assert.Equal(t, time.Hour, cfg.JWTAccessTokenTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestFromEnvRequiredKeys(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/pethaven")
	t.Setenv("JWT_SECRET", "")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromEnvInvalidValues(t *testing.T) {
	setRequired(t)

	t.Setenv("BCRYPT_COST", "twelve")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "BCRYPT_COST")

	t.Setenv("BCRYPT_COST", "")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "forever")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "JWT_ACCESS_TOKEN_TTL")
}
