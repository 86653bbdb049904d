// Package ports defines interfaces (hexagonal ports) for the authentication
// boundary. Implementations live in internal/adapters; orchestration in
// internal/service.
package ports

import (
	"context"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
	"github.com/lockboxhq/vault-api/internal/domain/model"
)

// IdentityProvider completes an OAuth authorization-code flow against the
// external identity provider.
type IdentityProvider interface {
	// AuthorizeURL returns the provider authorization URL the browser is
	// redirected to at login entry.
	AuthorizeURL() string

	// ExchangeCode exchanges an authorization code for an access token using
	// the redirect URI registered at construction. Provider-side rejections
	// surface as upstream errors carrying the raw provider payload.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchProfile retrieves the remote user profile with a bearer token.
	FetchProfile(ctx context.Context, accessToken string) (domainauth.Profile, error)
}

// TokenIssuer mints and verifies stateless session tokens.
type TokenIssuer interface {
	// Issue signs the claim set and returns the compact token.
	Issue(claims domainauth.Claims) (string, error)

	// Verify checks the token signature and returns the embedded claims.
	// Failures are distinguishable: jwtauth.ErrMalformed for structurally
	// invalid input, jwtauth.ErrInvalidSignature for tamper/secret mismatch.
	Verify(token string) (domainauth.Claims, error)
}

// AccountStore persists local account records keyed by the external identity id.
type AccountStore interface {
	// FindByID returns the account; absence surfaces as a NotFound AppError.
	FindByID(ctx context.Context, id string) (model.Account, error)

	// Upsert applies the login merge policy: insert a default-initialized
	// record for an unseen id, otherwise refresh only username/avatar while
	// carrying forward createdAt and the security-sensitive fields.
	Upsert(ctx context.Context, profile domainauth.Profile) (model.Account, error)

	// SetMasterPassword updates the account's master password (settings flow).
	SetMasterPassword(ctx context.Context, id, masterPassword string) error

	// SetTwoFactor updates the account's two-factor settings (settings flow).
	SetTwoFactor(ctx context.Context, id string, settings model.TwoFactorSettings) error
}
