package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/stretchr/testify/assert"
)

type mockAccountService struct {
	getFn               func(ctx context.Context, id string) (model.Account, error)
	setMasterPasswordFn func(ctx context.Context, id, masterPassword string) error
	setTwoFactorFn      func(ctx context.Context, id string, settings model.TwoFactorSettings) error
}

func (m *mockAccountService) Get(ctx context.Context, id string) (model.Account, error) {
	return m.getFn(ctx, id)
}

func (m *mockAccountService) SetMasterPassword(ctx context.Context, id, masterPassword string) error {
	return m.setMasterPasswordFn(ctx, id, masterPassword)
}

func (m *mockAccountService) SetTwoFactor(ctx context.Context, id string, settings model.TwoFactorSettings) error {
	return m.setTwoFactorFn(ctx, id, settings)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(SetClaimsInContext(req.Context(), testClaims()))
}

func TestAccountHandlers_Get_RedactsSecrets(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	h := &AccountHandlers{Svc: &mockAccountService{
		getFn: func(_ context.Context, id string) (model.Account, error) {
			assert.Equal(t, "81739284719283", id)
			return model.Account{
				ID:               id,
				Username:         "somebody",
				Avatar:           "a1b2c3",
				CreatedAt:        created,
				TwoFactorEnabled: true,
				TwoFactorSecret:  "otp-secret",
				MasterPassword:   "hunter2",
			}, nil
		},
	}}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/account", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.JSONEq(t, `{
		"id": "81739284719283",
		"username": "somebody",
		"avatar": "a1b2c3",
		"createdAt": "2025-01-02T03:04:05Z",
		"twoFactorEnabled": true,
		"masterPasswordSet": true
	}`, body)
	assert.NotContains(t, body, "hunter2")
	assert.NotContains(t, body, "otp-secret")
}

func TestAccountHandlers_Get_NotFound(t *testing.T) {
	h := &AccountHandlers{Svc: &mockAccountService{
		getFn: func(context.Context, string) (model.Account, error) {
			return model.Account{}, apperrors.NotFound("account not found")
		},
	}}

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/account", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountHandlers_SetMasterPassword(t *testing.T) {
	var gotID, gotPassword string
	h := &AccountHandlers{Svc: &mockAccountService{
		setMasterPasswordFn: func(_ context.Context, id, masterPassword string) error {
			gotID, gotPassword = id, masterPassword
			return nil
		},
	}}

	rec := httptest.NewRecorder()
	h.SetMasterPassword(rec, authedRequest(http.MethodPut, "/api/account/master-password", `{"masterPassword":"new-master"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "81739284719283", gotID)
	assert.Equal(t, "new-master", gotPassword)
}

func TestAccountHandlers_SetMasterPassword_ValidationError(t *testing.T) {
	h := &AccountHandlers{Svc: &mockAccountService{
		setMasterPasswordFn: func(context.Context, string, string) error {
			return apperrors.ValidationField("masterPassword", "master password is required")
		},
	}}

	rec := httptest.NewRecorder()
	h.SetMasterPassword(rec, authedRequest(http.MethodPut, "/api/account/master-password", `{"masterPassword":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandlers_SetMasterPassword_RejectsUnknownFields(t *testing.T) {
	h := &AccountHandlers{Svc: &mockAccountService{
		setMasterPasswordFn: func(context.Context, string, string) error {
			t.Fatal("service must not run for an unparseable body")
			return nil
		},
	}}

	rec := httptest.NewRecorder()
	h.SetMasterPassword(rec, authedRequest(http.MethodPut, "/api/account/master-password", `{"masterPassword":"x","extra":true}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestAccountHandlers_SetTwoFactor(t *testing.T) {
	var got model.TwoFactorSettings
	h := &AccountHandlers{Svc: &mockAccountService{
		setTwoFactorFn: func(_ context.Context, _ string, settings model.TwoFactorSettings) error {
			got = settings
			return nil
		},
	}}

	rec := httptest.NewRecorder()
	h.SetTwoFactor(rec, authedRequest(http.MethodPut, "/api/account/two-factor", `{"enabled":true,"secret":"otp-secret"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.TwoFactorSettings{Enabled: true, Secret: "otp-secret"}, got)
}
