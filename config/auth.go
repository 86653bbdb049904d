package config

import (
	"fmt"
	"strings"
	"time"
)

// Environment selects the development or production base URLs.
type Environment string

const (
	// EnvDevelopment selects the development server/client base URLs.
	EnvDevelopment Environment = "development"
	// EnvProduction selects the production server/client base URLs.
	EnvProduction Environment = "production"
)

// UnmarshalText implements encoding.TextUnmarshaler for Environment.
func (e *Environment) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "development", "production":
		*e = Environment(v)
		return nil
	default:
		return fmt.Errorf("invalid Environment: %q (valid options: development, production)", v)
	}
}

// DiscordConfig contains the identity provider's client credentials.
type DiscordConfig struct {
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`

	// APIBaseURL overrides the Discord API base; mainly for stub providers
	// in development and tests.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://discord.com/api"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens.
	JWTSecret string `env:"JWT_SECRET,required"`

	// TokenTTL bounds session token validity. Zero keeps tokens valid
	// indefinitely (the upstream design); set a duration to add an expiry claim.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"0"`

	// Discord client credentials.
	Discord DiscordConfig `envPrefix:"DISCORD_"`
}

// URLConfig holds the environment-dependent base URLs. The Environment flag
// selects between the dev and prod pair; nothing else is hardcoded.
type URLConfig struct {
	Environment Environment `env:"ENVIRONMENT" envDefault:"production"`

	DevServerURL string `env:"DEV_SERVER_URL" envDefault:"http://localhost:8080"`
	ServerURL    string `env:"SERVER_URL"     envDefault:"http://localhost:8080"`
	DevClientURL string `env:"DEV_CLIENT_URL" envDefault:"http://localhost:3000"`
	ClientURL    string `env:"CLIENT_URL"     envDefault:"http://localhost:3000"`
}

// Sanitize strips trailing slashes so URL joins stay predictable.
func (u *URLConfig) Sanitize() {
	u.DevServerURL = strings.TrimSuffix(u.DevServerURL, "/")
	u.ServerURL = strings.TrimSuffix(u.ServerURL, "/")
	u.DevClientURL = strings.TrimSuffix(u.DevClientURL, "/")
	u.ClientURL = strings.TrimSuffix(u.ClientURL, "/")
}

// ServerBaseURL returns the server base URL for the selected environment.
func (u URLConfig) ServerBaseURL() string {
	if u.Environment == EnvDevelopment {
		return u.DevServerURL
	}
	return u.ServerURL
}

// ClientBaseURL returns the client base URL for the selected environment.
func (u URLConfig) ClientBaseURL() string {
	if u.Environment == EnvDevelopment {
		return u.DevClientURL
	}
	return u.ClientURL
}

// OAuthRedirectURL is the server callback the provider redirects to; it must
// match the redirect URI sent on the authorize redirect exactly.
func (u URLConfig) OAuthRedirectURL() string {
	return u.ServerBaseURL() + "/api/auth/callback"
}

// ClientCallbackURL is the client-side page that receives the session token.
func (u URLConfig) ClientCallbackURL() string {
	return u.ClientBaseURL() + "/auth/callback"
}
