package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://spotbook@localhost/spotbook?sslmode=disable")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_JWT_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://parking.example.com, http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AdminJWTTTL)
	assert.Equal(t, 60, cfg.RateLimitPerMin)
	assert.Equal(t, "0 3 * * *", cfg.GuestCleanupCron)
	assert.Equal(t, []string{"https://parking.example.com", "http://localhost:3000"}, cfg.AllowedOrigins())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.EmailEnabled())
	assert.False(t, cfg.SMSEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
