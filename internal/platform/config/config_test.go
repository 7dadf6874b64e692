package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_LIFETIME_DAYS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []byte("test-secret"), cfg.JWTKey)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenLifetime)
	assert.Equal(t, 5, cfg.LoginMaxFails)
	assert.Contains(t, cfg.DBConnStr, "sslmode=disable")
}

func TestLoad_TokenLifetimeOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_LIFETIME_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenLifetime)
}
