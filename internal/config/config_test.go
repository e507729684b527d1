package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "newscheck.db", cfg.DBPath)
	assert.Equal(t, "model_artifact.gob", cfg.ModelPath)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tesseract", cfg.TesseractPath)
	assert.Equal(t, "smtp.example.com", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
}

func TestNewEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/var/lib/newscheck/app.db")
	t.Setenv("SECRET_KEY", "prod-secret")
	t.Setenv("RESET_TOKEN_SALT", "prod-salt")
	t.Setenv("EMAIL_HOST", "mail.internal")
	t.Setenv("EMAIL_PORT", "2525")
	t.Setenv("EMAIL_USER", "reset@newscheck.app")
	t.Setenv("EMAIL_PASS", "s3cret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/var/lib/newscheck/app.db", cfg.DBPath)
	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.Equal(t, "prod-salt", cfg.ResetTokenSalt)
	assert.Equal(t, "mail.internal", cfg.Email.Host)
	assert.Equal(t, 2525, cfg.Email.Port)
	assert.Equal(t, "reset@newscheck.app", cfg.Email.Username)
	assert.Equal(t, "s3cret", cfg.Email.Password)
}

func TestNewFromDefaultsToUsername(t *testing.T) {
	t.Setenv("EMAIL_USER", "sender@newscheck.app")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "sender@newscheck.app", cfg.Email.From)

	t.Setenv("EMAIL_FROM", "noreply@newscheck.app")
	cfg, err = New()
	require.NoError(t, err)
	assert.Equal(t, "noreply@newscheck.app", cfg.Email.From)
}
