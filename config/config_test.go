package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 5, cfg.RateLimitAuthMax)
	assert.False(t, cfg.RequireAdminForWaitingList)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("RATE_LIMIT_MAX", "42")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REQUIRE_ADMIN_FOR_WAITING_LIST", "true")
	t.Setenv("SEED_SAMPLE_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 42, cfg.RateLimitMax)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RequireAdminForWaitingList)
	assert.True(t, cfg.SeedSampleData)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("SEED_SAMPLE_DATA", "yes please")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.SeedSampleData)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWTSecret:  "secret",
			JWTExpiry:  time.Hour,
			BcryptCost: bcrypt.DefaultCost,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg = valid()
	cfg.BcryptCost = bcrypt.MaxCost + 1
	assert.ErrorContains(t, cfg.Validate(), "BCRYPT_COST")

	cfg = valid()
	cfg.JWTExpiry = 0
	assert.ErrorContains(t, cfg.Validate(), "JWT_EXPIRY")
}
