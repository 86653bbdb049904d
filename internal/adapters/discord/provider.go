// Package discord provides the identity provider client for the Discord
// OAuth2 API. It is a pure protocol client: code exchange plus profile fetch,
// no state.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"golang.org/x/oauth2"
)

// DefaultAPIBaseURL is the production Discord API base.
const DefaultAPIBaseURL = "https://discord.com/api"

// identifyScope is the minimum scope needed to read the user profile.
const identifyScope = "identify"

// maxErrorBody caps how much of an upstream error payload is retained.
const maxErrorBody = 8 << 10

// Config holds configuration for the Discord provider.
type Config struct {
	ClientID     string
	ClientSecret string
	// RedirectURL must exactly match the redirect URI sent on the authorize
	// redirect; Discord rejects the exchange otherwise.
	RedirectURL string
	// APIBaseURL overrides the Discord API base (stub servers in tests).
	APIBaseURL string
	// HTTPClient is optional and defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// Provider implements ports.IdentityProvider against the Discord API.
type Provider struct {
	config     *oauth2.Config
	apiBase    string
	httpClient *http.Client
}

// NewProvider creates a Discord provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	apiBase := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if apiBase == "" {
		apiBase = DefaultAPIBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{identifyScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   apiBase + "/oauth2/authorize",
				TokenURL:  apiBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBase:    apiBase,
		httpClient: httpClient,
	}, nil
}

// AuthorizeURL builds the provider authorization URL with the client id,
// URL-encoded redirect URI, response type code, and the identify scope.
func (p *Provider) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", p.config.ClientID)
	q.Set("redirect_uri", p.config.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", identifyScope)
	return p.config.Endpoint.AuthURL + "?" + q.Encode()
}

// ExchangeCode performs the form-encoded token exchange and returns the
// access token. Provider-side rejections surface as upstream AppErrors
// carrying the raw response payload.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", apperrors.Validation("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, upstreamMessage(retrieveErr.Body))
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "token exchange failed")
	}
	if token.AccessToken == "" {
		return "", apperrors.Upstream("token response missing access_token")
	}
	return token.AccessToken, nil
}

// FetchProfile performs an authenticated GET against the profile endpoint.
func (p *Provider) FetchProfile(ctx context.Context, accessToken string) (domainauth.Profile, error) {
	if accessToken == "" {
		return domainauth.Profile{}, apperrors.Validation("access token is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/users/@me", nil)
	if err != nil {
		return domainauth.Profile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "profile fetch failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "read profile response")
	}

	if resp.StatusCode != http.StatusOK {
		return domainauth.Profile{}, apperrors.Upstream(upstreamMessage(body))
	}

	var profile domainauth.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode profile response")
	}
	if profile.ID == "" {
		return domainauth.Profile{}, apperrors.Upstream("profile response missing id")
	}
	return profile, nil
}

// upstreamMessage turns a raw provider payload into the error message,
// falling back to a generic message when the payload is empty.
func upstreamMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "identity provider request failed"
	}
	return msg
}
