package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "auracare", cfg.DatabaseName)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.Equal(t, 12.0, cfg.PFRatePercent)
	assert.Equal(t, 200.0, cfg.ProfessionalTax)
	assert.Equal(t, "0 2 1 * *", cfg.PayrollCron)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_QUEUE_DB", "4")
	t.Setenv("PF_RATE_PERCENT", "10.5")
	t.Setenv("CORS_ORIGINS", "https://app.auracare.io, https://admin.auracare.io")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 4, cfg.RedisQueueDB)
	assert.Equal(t, 10.5, cfg.PFRatePercent)
	assert.Equal(t, []string{"https://app.auracare.io", "https://admin.auracare.io"}, cfg.AllowedOrigins())
}

func TestLoad_Validation(t *testing.T) {
	t.Run("production requires a JWT secret", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("PF rate must be a percentage", func(t *testing.T) {
		t.Setenv("PF_RATE_PERCENT", "140")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("token lifetime must be positive", func(t *testing.T) {
		t.Setenv("JWT_TTL_HOURS", "0")

		_, err := Load()
		require.Error(t, err)
	})
}
