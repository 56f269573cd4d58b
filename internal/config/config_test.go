package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "BACKEND_URL", "RESERVA_RESET_DELAY", "UF_REFRESH_CRON", "LOGIN_RATE_PER_MIN", "ENV"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.ReservaResetDelay)
	assert.Equal(t, "0 5 * * *", cfg.UFRefreshCron)
	assert.Equal(t, 10, cfg.LoginRatePerMin)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://api.condo.test/api/v1/")
	t.Setenv("RESERVA_RESET_DELAY", "150ms")
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.condo.test/api/v1", cfg.BackendURL)
	assert.Equal(t, 150*time.Millisecond, cfg.ReservaResetDelay)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
