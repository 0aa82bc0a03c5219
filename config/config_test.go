package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "chargesphere", cfg.DatabaseName)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, 10, cfg.StationsTimeoutSeconds)
	assert.Equal(t, []string{
		"https://api.allorigins.win/raw?url=",
		"https://corsproxy.org/?",
		"https://corsproxy.io/?",
	}, cfg.StationsRelays)
	assert.Equal(t, "@every 15m", cfg.CompletionSchedule)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MAX_REQUESTS_PER_MIN", "30")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 30, cfg.MaxRequestsPerMin)
	assert.Equal(t, "production", cfg.Env)
}

func TestIsProduction(t *testing.T) {
	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	AppConfig = Config{Env: "production"}
	assert.True(t, IsProduction())

	AppConfig = Config{Env: "development"}
	assert.False(t, IsProduction())
}
