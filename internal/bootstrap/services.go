package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lockboxhq/vault-api/config"
	"github.com/lockboxhq/vault-api/internal/adapters/discord"
	"github.com/lockboxhq/vault-api/internal/adapters/jwtauth"
	redisadapter "github.com/lockboxhq/vault-api/internal/adapters/redis"
	"github.com/lockboxhq/vault-api/internal/data"
	"github.com/lockboxhq/vault-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceDeps contains the shared infrastructure needed to build services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds all constructed services plus the token issuer the
// middleware verifies against.
type ServiceContainer struct {
	Auth        *service.AuthService
	Accounts    *service.AccountService
	Credentials *service.CredentialService
	Tokens      *jwtauth.Issuer
}

// BuildServices wires adapters into services from configuration.
func BuildServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config

	provider, err := discord.NewProvider(discord.Config{
		ClientID:     cfg.Auth.Discord.ClientID,
		ClientSecret: cfg.Auth.Discord.ClientSecret,
		RedirectURL:  cfg.URLs.OAuthRedirectURL(),
		APIBaseURL:   cfg.Auth.Discord.APIBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create identity provider: %w", err)
	}

	issuer, err := jwtauth.NewIssuer(jwtauth.Config{
		Secret: []byte(cfg.Auth.JWTSecret),
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create token issuer: %w", err)
	}

	accounts := redisadapter.NewAccountStore(deps.RedisClient)
	credentials := data.NewCredentialRepo(deps.DB)

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider: provider,
			Accounts: accounts,
			Tokens:   issuer,
		}),
		Accounts:    service.NewAccountService(accounts),
		Credentials: service.NewCredentialService(credentials),
		Tokens:      issuer,
	}, nil
}
