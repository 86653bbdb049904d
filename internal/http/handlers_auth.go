package httpx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/lockboxhq/vault-api/internal/service"
)

// providerAccessDenied is the provider error code for a user declining consent.
const providerAccessDenied = "access_denied"

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	LoginURL() string
	CompleteLogin(ctx context.Context, code string) (*service.CompleteLoginResult, error)
}

// AuthHandlers provides HTTP handlers for the login flow.
type AuthHandlers struct {
	Svc AuthServiceInterface
	// ClientCallbackURL is the client-side callback the browser is redirected
	// to after a successful login, with the token appended as a query param.
	ClientCallbackURL string
	Logger            *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login entry endpoint.
// GET /api/auth — 302 redirect to the provider authorization URL.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Svc.LoginURL(), http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /api/auth/callback?code=<code>  (or ?error=...&error_description=...)
//
// Terminal states: 403 when the user denied consent, 400 when the provider
// sent no code, 302 to the client callback on success, 500 on exchange/
// fetch/upsert failure. Failures never produce a partial redirect.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("error") == providerAccessDenied {
		http.Error(w, "Access denied: "+q.Get("error_description"), http.StatusForbidden)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Error: No code received.", http.StatusBadRequest)
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), code)
	if err != nil {
		h.writeCallbackError(w, r, err)
		return
	}

	redirectURL := fmt.Sprintf("%s?token=%s", h.ClientCallbackURL, url.QueryEscape(result.Token))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// writeCallbackError maps login completion failures to 500 responses,
// distinguishing upstream provider errors (body carries the provider's raw
// payload) from internal errors.
func (h *AuthHandlers) writeCallbackError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsUpstream(err) {
		h.logger().ErrorContext(r.Context(), "login failed: identity provider error",
			"error", err,
			"provider_payload", apperrors.GetMessage(err),
		)
		WriteMessage(w, http.StatusInternalServerError, apperrors.GetMessage(err))
		return
	}

	h.logger().ErrorContext(r.Context(), "login failed", "error", err)
	WriteMessage(w, http.StatusInternalServerError, err.Error())
}

// Me returns the verified claims of the current session.
// GET /api/auth/me (protected).
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     fmt.Errorf("authentication required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, claims)
}
