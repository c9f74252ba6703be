package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "listings-console")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("API_URL", "http://backend.local/api/")
	t.Setenv("API_AUTH_URL", "")
	t.Setenv("SESSION_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local/api", cfg.API.BaseURL)
	assert.Equal(t, "http://backend.local", cfg.API.AuthURL)
	assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, "localhost", cfg.Cache.RedisHost)
	assert.Equal(t, "6379", cfg.Cache.RedisPort)
	assert.Equal(t, DefaultCookieName, cfg.Session.CookieName)
	assert.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
	assert.False(t, cfg.Session.Secure)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 2, cfg.Warmup.Workers)
	assert.Equal(t, 10, cfg.Warmup.PerPage)
	assert.Equal(t, DefaultWarmupActiveWindow, cfg.Warmup.ActiveWindow)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("API_URL", "")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, IsMissingRequired(err))
	assert.Contains(t, err.Error(), "API_URL")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("CACHE_DRIVER", "Redis")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("DB_HOST", "db")
	t.Setenv("WARMUP_SCHEDULE", "@every 3m")
	t.Setenv("WS_ALLOWED_ORIGINS", "http://console.local, ,https://admin.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, "@every 3m", cfg.Warmup.Schedule)
	assert.Equal(t, []string{"http://console.local", "https://admin.local"}, cfg.Session.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_DRIVER", "memcached")
	t.Setenv("CACHE_TTL_SECONDS", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.False(t, IsMissingRequired(err))
	assert.Contains(t, err.Error(), "CACHE_DRIVER")
	assert.Contains(t, err.Error(), "CACHE_TTL_SECONDS")
}

func TestLoadClient(t *testing.T) {
	t.Setenv("API_URL", "https://jobs.example.com/")
	t.Setenv("API_AUTH_URL", "https://auth.example.com/")
	t.Setenv("API_AUTH_TOKEN", "tok")
	t.Setenv("API_TIMEOUT_SECONDS", "3")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com", cfg.BaseURL)
	assert.Equal(t, "https://auth.example.com", cfg.AuthURL)
	assert.Equal(t, "tok", cfg.AuthToken)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	t.Setenv("API_TIMEOUT_SECONDS", "-1")
	_, err = LoadClient()
	assert.Error(t, err)
}
