package service

import (
	"context"
	"fmt"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/lockboxhq/vault-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider
	Accounts ports.AccountStore
	Tokens   ports.TokenIssuer
}

// AuthService orchestrates the login flow: code exchange, profile fetch,
// account upsert, and session token issuance.
type AuthService struct {
	provider ports.IdentityProvider
	accounts ports.AccountStore
	tokens   ports.TokenIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider: opts.Provider,
		accounts: opts.Accounts,
		tokens:   opts.Tokens,
	}
}

// LoginURL returns the provider authorization URL for the login entry redirect.
func (s *AuthService) LoginURL() string {
	return s.provider.AuthorizeURL()
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Token  string
	Claims domainauth.Claims
}

// CompleteLogin exchanges the authorization code, fetches the remote profile,
// upserts the local account, and mints the session token. Provider failures
// keep their upstream classification; everything else surfaces as-is for the
// handler boundary to map to an internal error.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (*CompleteLoginResult, error) {
	if code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}

	accessToken, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	profile, err := s.provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	if _, upsertErr := s.accounts.Upsert(ctx, profile); upsertErr != nil {
		return nil, fmt.Errorf("upsert account: %w", upsertErr)
	}

	claims := domainauth.ClaimsFromProfile(profile)
	token, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &CompleteLoginResult{
		Token:  token,
		Claims: claims,
	}, nil
}
