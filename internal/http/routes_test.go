package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
	"github.com/lockboxhq/vault-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, verifier TokenVerifier) http.Handler {
	t.Helper()
	if verifier == nil {
		verifier = &mockVerifier{
			verifyFn: func(string) (domainauth.Claims, error) { return testClaims(), nil },
		}
	}
	return NewRouter(RouterServices{
		Auth: &mockAuthService{
			loginURLFn: func() string { return "https://discord.example/oauth2/authorize" },
			completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
				return &service.CompleteLoginResult{Token: "tok"}, nil
			},
		},
		Tokens:            verifier,
		ClientCallbackURL: "http://localhost:3000/auth/callback",
		Logger:            discardLogger(),
	})
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	verifier := &mockVerifier{
		verifyFn: func(string) (domainauth.Claims, error) {
			t.Fatal("verifier must not run without an Authorization header")
			return domainauth.Claims{}, nil
		},
	}
	router := newTestRouter(t, verifier)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/account"},
		{http.MethodPut, "/api/account/master-password"},
		{http.MethodPut, "/api/account/two-factor"},
		{http.MethodGet, "/api/passwords"},
		{http.MethodPost, "/api/passwords"},
		{http.MethodGet, "/api/passwords/cred-1"},
		{http.MethodPut, "/api/passwords/cred-1"},
		{http.MethodDelete, "/api/passwords/cred-1"},
	}

	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestRouter_PublicLoginRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=the-code", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "token=tok")
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
