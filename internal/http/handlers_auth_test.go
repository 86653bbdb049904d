package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/lockboxhq/vault-api/internal/adapters/jwtauth"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/lockboxhq/vault-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	loginURLFn      func() string
	completeLoginFn func(ctx context.Context, code string) (*service.CompleteLoginResult, error)

	completeCalls int
}

func (m *mockAuthService) LoginURL() string {
	return m.loginURLFn()
}

func (m *mockAuthService) CompleteLogin(ctx context.Context, code string) (*service.CompleteLoginResult, error) {
	m.completeCalls++
	return m.completeLoginFn(ctx, code)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthHandlers_Login_RedirectsToProvider(t *testing.T) {
	h := &AuthHandlers{
		Svc: &mockAuthService{
			loginURLFn: func() string {
				return "https://discord.example/api/oauth2/authorize?client_id=x&response_type=code"
			},
		},
		Logger: discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://discord.example/api/oauth2/authorize?client_id=x&response_type=code", rec.Header().Get("Location"))
}

func TestAuthHandlers_Callback_UserDenied(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
			t.Fatal("login completion must not run when the user denied consent")
			return nil, nil
		},
	}
	h := &AuthHandlers{Svc: svc, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?error=access_denied&error_description=foo", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied: foo")
	assert.Zero(t, svc.completeCalls)
}

func TestAuthHandlers_Callback_NoCode(t *testing.T) {
	svc := &mockAuthService{
		completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
			t.Fatal("login completion must not run without a code")
			return nil, nil
		},
	}
	h := &AuthHandlers{Svc: svc, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: No code received.")
	assert.Zero(t, svc.completeCalls)
}

func TestAuthHandlers_Callback_Success(t *testing.T) {
	h := &AuthHandlers{
		Svc: &mockAuthService{
			completeLoginFn: func(_ context.Context, code string) (*service.CompleteLoginResult, error) {
				assert.Equal(t, "the-code", code)
				return &service.CompleteLoginResult{Token: "a.b.c+d"}, nil
			},
		},
		ClientCallbackURL: "http://localhost:3000/auth/callback",
		Logger:            discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=the-code", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/auth/callback", loc.Scheme+"://"+loc.Host+loc.Path)
	assert.Equal(t, "a.b.c+d", loc.Query().Get("token"))
}

func TestAuthHandlers_Callback_TokenVerifiesToProfileClaims(t *testing.T) {
	issuer, err := jwtauth.NewIssuer(jwtauth.Config{Secret: []byte("test-secret")})
	require.NoError(t, err)

	h := &AuthHandlers{
		Svc: &mockAuthService{
			completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
				token, issueErr := issuer.Issue(testClaims())
				if issueErr != nil {
					return nil, issueErr
				}
				return &service.CompleteLoginResult{Token: token, Claims: testClaims()}, nil
			},
		},
		ClientCallbackURL: "http://localhost:3000/auth/callback",
		Logger:            discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=the-code", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	claims, err := issuer.Verify(loc.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, testClaims(), claims)
}

func TestAuthHandlers_Callback_UpstreamErrorCarriesProviderPayload(t *testing.T) {
	h := &AuthHandlers{
		Svc: &mockAuthService{
			completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
				return nil, apperrors.Upstream(`{"error":"invalid_grant"}`)
			},
		},
		Logger: discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=stale", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"{\"error\":\"invalid_grant\"}"}`, rec.Body.String())
}

func TestAuthHandlers_Callback_InternalError(t *testing.T) {
	h := &AuthHandlers{
		Svc: &mockAuthService{
			completeLoginFn: func(context.Context, string) (*service.CompleteLoginResult, error) {
				return nil, errors.New("upsert account: redis down")
			},
		},
		Logger: discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=ok", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"upsert account: redis down"}`, rec.Body.String())
}

func TestAuthHandlers_Me(t *testing.T) {
	h := &AuthHandlers{Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(SetClaimsInContext(req.Context(), testClaims()))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"81739284719283","username":"somebody","avatar":"a1b2c3"}`, rec.Body.String())
}

func TestAuthHandlers_Me_NoClaims(t *testing.T) {
	h := &AuthHandlers{Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
