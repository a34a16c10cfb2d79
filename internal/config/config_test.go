package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	t.Setenv("AUTH_JWT_EXPIRY", "")
	t.Setenv("AUTH_JWT_EXPIRY_UNIT", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.Expiry)
	assert.Equal(t, "minutes", cfg.Auth.ExpiryUnit)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	t.Setenv("AUTH_JWT_EXPIRY", "5")
	t.Setenv("AUTH_JWT_EXPIRY_UNIT", "days")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Auth.Expiry)
	assert.Equal(t, "days", cfg.Auth.ExpiryUnit)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoad_RejectsBadExpiry(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")

	t.Setenv("AUTH_JWT_EXPIRY", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_EXPIRY", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_EXPIRY", "-5")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_Bootstrap(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	t.Setenv("AUTH_BOOTSTRAP_USERNAME", "")
	t.Setenv("AUTH_BOOTSTRAP_PASSWORD", "")
	t.Setenv("AUTH_BOOTSTRAP_ROLES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.Bootstrap.Enabled())

	t.Setenv("AUTH_BOOTSTRAP_USERNAME", "admin")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("AUTH_BOOTSTRAP_PASSWORD", "changeme")
	t.Setenv("AUTH_BOOTSTRAP_ROLES", "ADMIN, USER,,")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.Bootstrap.Enabled())
	assert.Equal(t, "admin", cfg.Auth.Bootstrap.Username)
	assert.Equal(t, "changeme", cfg.Auth.Bootstrap.Password)
	assert.Equal(t, []string{"ADMIN", "USER"}, cfg.Auth.Bootstrap.Roles)
}
