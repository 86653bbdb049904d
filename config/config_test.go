package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DISCORD_CLIENT_ID", "client-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "client-secret")
}

func TestAppConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Duration(0), cfg.Auth.TokenTTL)
	assert.Equal(t, "https://discord.com/api", cfg.Auth.Discord.APIBaseURL)
	assert.Equal(t, EnvProduction, cfg.URLs.Environment)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "lockbox", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestAppConfig_MissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DISCORD_CLIENT_ID", "client-id")
	t.Setenv("DISCORD_CLIENT_SECRET", "client-secret")

	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))
}

func TestURLConfig_EnvironmentSelection(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DEV_SERVER_URL", "http://localhost:9999")
	t.Setenv("SERVER_URL", "https://vault.example.com")
	t.Setenv("DEV_CLIENT_URL", "http://localhost:3001")
	t.Setenv("CLIENT_URL", "https://app.example.com")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "http://localhost:9999", cfg.URLs.ServerBaseURL())
	assert.Equal(t, "http://localhost:3001", cfg.URLs.ClientBaseURL())
	assert.Equal(t, "http://localhost:9999/api/auth/callback", cfg.URLs.OAuthRedirectURL())
	assert.Equal(t, "http://localhost:3001/auth/callback", cfg.URLs.ClientCallbackURL())

	t.Setenv("ENVIRONMENT", "production")
	var prod AppConfig
	require.NoError(t, env.Parse(&prod))
	prod.Sanitize()

	assert.Equal(t, "https://vault.example.com", prod.URLs.ServerBaseURL())
	assert.Equal(t, "https://app.example.com/auth/callback", prod.URLs.ClientCallbackURL())
}

func TestURLConfig_InvalidEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "staging")

	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))
}

func TestURLConfig_SanitizeTrimsTrailingSlash(t *testing.T) {
	u := URLConfig{
		Environment:  EnvProduction,
		ServerURL:    "https://vault.example.com/",
		ClientURL:    "https://app.example.com/",
		DevServerURL: "http://localhost:8080/",
		DevClientURL: "http://localhost:3000/",
	}
	u.Sanitize()

	assert.Equal(t, "https://vault.example.com/api/auth/callback", u.OAuthRedirectURL())
	assert.Equal(t, "https://app.example.com/auth/callback", u.ClientCallbackURL())
}

func TestAuthConfig_TokenTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_TOKEN_TTL", "24h")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestHTTPConfig_SanitizeClampsValues(t *testing.T) {
	h := HTTPConfig{Addr: "", ReadTimeout: -1, WriteTimeout: 0, ShutdownTimeout: 0}
	h.Sanitize()

	assert.Equal(t, ":8080", h.Addr)
	assert.Equal(t, 30*time.Second, h.ReadTimeout)
	assert.Equal(t, 30*time.Second, h.WriteTimeout)
	assert.Equal(t, 10*time.Second, h.ShutdownTimeout)
}
