package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/lockboxhq/vault-api/internal/data"
	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
)

// CredentialServiceInterface defines the interface for vault entry operations.
type CredentialServiceInterface interface {
	Create(ctx context.Context, accountID string, req *model.CreateCredentialRequest) (*model.Credential, error)
	Get(ctx context.Context, accountID, id string) (*model.Credential, error)
	List(ctx context.Context, accountID string) ([]*model.Credential, error)
	Update(ctx context.Context, accountID, id string, req model.UpdateCredentialRequest) (*model.Credential, error)
	Delete(ctx context.Context, accountID, id string) error
}

// CredentialHandlers provides HTTP handlers for vault entries.
// All routes sit behind RequireAuth; every operation is scoped to the
// authenticated identity from the request context.
type CredentialHandlers struct {
	Svc CredentialServiceInterface
}

// List returns the account's vault entries.
// GET /api/passwords.
func (h *CredentialHandlers) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	creds, err := h.Svc.List(r.Context(), claims.ID)
	if err != nil {
		writeCredentialError(w, err)
		return
	}
	if creds == nil {
		creds = []*model.Credential{}
	}
	WriteJSON(w, http.StatusOK, creds)
}

// Create adds a vault entry.
// POST /api/passwords.
func (h *CredentialHandlers) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	var req model.CreateCredentialRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cred, err := h.Svc.Create(r.Context(), claims.ID, &req)
	if err != nil {
		writeCredentialError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, cred)
}

// Get returns a single vault entry.
// GET /api/passwords/{id}.
func (h *CredentialHandlers) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	cred, err := h.Svc.Get(r.Context(), claims.ID, r.PathValue("id"))
	if err != nil {
		writeCredentialError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cred)
}

// Update applies a partial update to a vault entry.
// PUT /api/passwords/{id}.
func (h *CredentialHandlers) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	var req model.UpdateCredentialRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cred, err := h.Svc.Update(r.Context(), claims.ID, r.PathValue("id"), req)
	if err != nil {
		writeCredentialError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, cred)
}

// Delete removes a vault entry.
// DELETE /api/passwords/{id}.
func (h *CredentialHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := GetClaimsFromContext(r.Context())

	if err := h.Svc.Delete(r.Context(), claims.ID, r.PathValue("id")); err != nil {
		writeCredentialError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCredentialError maps repository sentinels and validation errors to
// HTTP responses.
func writeCredentialError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrCredentialNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: data.ErrCredentialNotFound})
	case errors.Is(err, data.ErrCredentialNameExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: data.ErrCredentialNameExists})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
	default:
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: errors.New("internal error")})
	}
}
