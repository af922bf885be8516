package handler

import (
	"net/http"

	"github.com/dmoren/saasbase/internal/auth"
	"github.com/dmoren/saasbase/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. webhookSecret
// may be nil to source the signing secret from the environment per request.
func RegisterRoutes(mux *http.ServeMux, users *service.UserService, verifier auth.Verifier, webhookSecret func() string) {
	userHandler := NewUserHandler(users)
	dashboard := NewDashboardHandler(users)
	webhook := NewWebhookHandler(users, webhookSecret)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Pages.
	mux.Handle("GET /{$}", OptionalAuth(verifier, http.HandlerFunc(HandleHome)))
	mux.HandleFunc("GET /sign-in", HandleSignIn)
	mux.HandleFunc("GET /sign-up", HandleSignUp)
	mux.Handle("GET /dashboard",
		RequireAuth(verifier, SyncUser(users, http.HandlerFunc(dashboard.HandleDashboard))))
	mux.Handle("GET /dashboard/profile",
		RequireAuth(verifier, http.HandlerFunc(dashboard.HandleProfile)))

	// JSON API.
	mux.Handle("GET /api/users/me",
		RequireAPIAuth(verifier, http.HandlerFunc(userHandler.HandleMe)))
	mux.Handle("POST /api/users/sync",
		RequireAPIAuth(verifier, http.HandlerFunc(userHandler.HandleSync)))
	mux.Handle("PATCH /api/users/me",
		RequireAPIAuth(verifier, http.HandlerFunc(userHandler.HandleUpdateMe)))

	// Identity provider webhook. Authenticity comes from signature
	// verification, not from a session.
	mux.HandleFunc("POST /clerk-webhook", webhook.HandleClerkWebhook)
}
