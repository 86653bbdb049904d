package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication and base-URL configuration
//   - database.go: Database and account-store configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// Authentication configuration
	Auth AuthConfig

	// Environment-dependent base URLs
	URLs URLConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.URLs.Sanitize()
	c.HTTP.Sanitize()
}

// IsDev reports whether the development environment is selected.
func (c *AppConfig) IsDev() bool {
	return c.URLs.Environment == EnvDevelopment
}
