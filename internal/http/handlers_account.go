package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
)

// AccountServiceInterface defines the interface for account settings operations.
type AccountServiceInterface interface {
	Get(ctx context.Context, id string) (model.Account, error)
	SetMasterPassword(ctx context.Context, id, masterPassword string) error
	SetTwoFactor(ctx context.Context, id string, settings model.TwoFactorSettings) error
}

// AccountHandlers provides HTTP handlers for the account settings flow.
// All routes sit behind RequireAuth.
type AccountHandlers struct {
	Svc AccountServiceInterface
}

// accountResponse is the public account shape; secret material is redacted.
type accountResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Avatar            string    `json:"avatar"`
	CreatedAt         time.Time `json:"createdAt"`
	TwoFactorEnabled  bool      `json:"twoFactorEnabled"`
	MasterPasswordSet bool      `json:"masterPasswordSet"`
}

// Get returns the current account.
// GET /api/account.
func (h *AccountHandlers) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	acct, err := h.Svc.Get(r.Context(), claims.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, accountResponse{
		ID:                acct.ID,
		Username:          acct.Username,
		Avatar:            acct.Avatar,
		CreatedAt:         acct.CreatedAt,
		TwoFactorEnabled:  acct.TwoFactorEnabled,
		MasterPasswordSet: acct.MasterPassword != "",
	})
}

// SetMasterPassword updates the account's master password.
// PUT /api/account/master-password.
func (h *AccountHandlers) SetMasterPassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	var req struct {
		MasterPassword string `json:"masterPassword"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.SetMasterPassword(r.Context(), claims.ID, req.MasterPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetTwoFactor updates the account's two-factor settings.
// PUT /api/account/two-factor.
func (h *AccountHandlers) SetTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	var req model.TwoFactorSettings
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.SetTwoFactor(r.Context(), claims.ID, req); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps service-layer errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case apperrors.IsConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal error")})
	}
}
