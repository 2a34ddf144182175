package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_USER", "devconnect")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "devconnect")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, 10, cfg.DB.MaxConns)
	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, 100*time.Hour, cfg.Auth.TokenDuration)
	require.Empty(t, cfg.Github.ClientID)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TOKEN_DURATION", "15m")
	t.Setenv("GITHUB_CLIENT_ID", "abc")
	t.Setenv("GITHUB_CLIENT_SECRET", "def")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "db.internal", cfg.DB.Host)
	require.Equal(t, 5433, cfg.DB.Port)
	require.Equal(t, 25, cfg.DB.MaxConns)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenDuration)
	require.Equal(t, "abc", cfg.Github.ClientID)
	require.Equal(t, "def", cfg.Github.ClientSecret)
}

func TestLoadConfigCollectsAllMissingVariables(t *testing.T) {
	// Only one of the required variables is present; the error must name
	// every missing one, not just the first.
	t.Setenv("DB_USER", "devconnect")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_PASSWORD")
	require.Contains(t, err.Error(), "DB_NAME")
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigRejectsBadInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_PORT")
}
