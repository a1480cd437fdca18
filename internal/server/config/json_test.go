package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":              "www.example:9000",
		"database_dsn":                    "habits.db",
		"secret_key":                      "my_secret_key",
		"access_token_validity_duration":  "15m",
		"refresh_token_validity_duration": "168h",
		"reset_token_validity_duration":   "1h",
		"mailgun_domain":                  "mg.example.com",
		"mailgun_api_key":                 "key-123",
		"email_from":                      "Habitly <noreply@example.com>",
		"frontend_url":                    "https://app.example.com",
		"cors_allowed_origins":            []string{"https://app.example.com"},
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "habits.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 168*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 1*time.Hour, cfg.ResetTokenValidityDuration)
		assert.Equal(t, "mg.example.com", cfg.MailgunDomain)
		assert.Equal(t, "key-123", cfg.MailgunAPIKey)
		assert.Equal(t, "Habitly <noreply@example.com>", cfg.EmailFrom)
		assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSAllowedOrigins)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP:             "defaults:1234",
			DatabaseDSN:                  "habits.db",
			SecretKey:                    "key",
			AccessTokenValidityDuration:  2 * time.Minute,
			RefreshTokenValidityDuration: 3 * time.Minute,
			ResetTokenValidityDuration:   1 * time.Hour,
			MailgunDomain:                "mg",
			MailgunAPIKey:                "apikey",
			EmailFrom:                    "from",
			FrontendURL:                  "frontend",
			CORSAllowedOrigins:           []string{"origin"},
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "habits.db", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 1*time.Hour, cfg.ResetTokenValidityDuration)
		assert.Equal(t, "mg", cfg.MailgunDomain)
		assert.Equal(t, "apikey", cfg.MailgunAPIKey)
		assert.Equal(t, "from", cfg.EmailFrom)
		assert.Equal(t, "frontend", cfg.FrontendURL)
		assert.Equal(t, []string{"origin"}, cfg.CORSAllowedOrigins)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
