package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, "Kyronix LLC", cfg.EmployerLegalName)
	assert.Equal(t, int64(10485760), cfg.MaxBodyBytes)
	assert.True(t, cfg.RunMigrations)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("AUDIT_RETENTION_DAYS", "30")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 30, cfg.AuditRetentionDays)
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/portal"
	cfg.Environment = "production"
	cfg.JWTSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateEmailNeedsHost(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = "postgres://localhost/portal"
	cfg.EmailEnabled = true
	cfg.SMTPHost = ""

	assert.Error(t, cfg.Validate())
}
