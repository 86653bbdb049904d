package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        AuthServiceInterface
	Accounts    AccountServiceInterface
	Credentials CredentialServiceInterface
	// Tokens verifies bearer session tokens for protected routes.
	Tokens TokenVerifier
	// ClientCallbackURL is where the browser lands after a successful login.
	ClientCallbackURL string
	Logger            *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:               services.Auth,
		ClientCallbackURL: services.ClientCallbackURL,
		Logger:            services.Logger,
	}
	accountHandlers := &AccountHandlers{Svc: services.Accounts}
	credentialHandlers := &CredentialHandlers{Svc: services.Credentials}

	protect := RequireAuth(services.Tokens)

	// Login flow (public).
	mux.Handle("GET /api/auth", http.HandlerFunc(authHandlers.Login))
	mux.Handle("GET /api/auth/callback", http.HandlerFunc(authHandlers.Callback))
	mux.Handle("GET /api/auth/me", protect(http.HandlerFunc(authHandlers.Me)))

	// Account settings flow (protected).
	mux.Handle("GET /api/account", protect(http.HandlerFunc(accountHandlers.Get)))
	mux.Handle("PUT /api/account/master-password", protect(http.HandlerFunc(accountHandlers.SetMasterPassword)))
	mux.Handle("PUT /api/account/two-factor", protect(http.HandlerFunc(accountHandlers.SetTwoFactor)))

	// Vault entries (protected).
	mux.Handle("GET /api/passwords", protect(http.HandlerFunc(credentialHandlers.List)))
	mux.Handle("POST /api/passwords", protect(http.HandlerFunc(credentialHandlers.Create)))
	mux.Handle("GET /api/passwords/{id}", protect(http.HandlerFunc(credentialHandlers.Get)))
	mux.Handle("PUT /api/passwords/{id}", protect(http.HandlerFunc(credentialHandlers.Update)))
	mux.Handle("DELETE /api/passwords/{id}", protect(http.HandlerFunc(credentialHandlers.Delete)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
