package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmoren/saasbase/internal/auth"
	"github.com/dmoren/saasbase/internal/service"
)

type contextKey string

const identityContextKey contextKey = "identity"

// sessionCookieName is the cookie Clerk's frontend SDK sets for the
// current session token.
const sessionCookieName = "__session"

// IdentityFromContext extracts the verified session identity from the
// request context. Returns nil if the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return identity
}

// RequireAuth guards page routes. Unauthenticated visitors are redirected
// to the sign-in page, never shown an error.
func RequireAuth(verifier auth.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := authenticateRequest(r, verifier)
		if err != nil {
			http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAPIAuth guards JSON API routes with a 401 instead of a redirect.
func RequireAPIAuth(verifier auth.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := authenticateRequest(r, verifier)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attempts to authenticate but does not block unauthenticated
// requests. If a valid token is present the identity is injected into
// context; otherwise the request proceeds without one.
func OptionalAuth(verifier auth.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := authenticateRequest(r, verifier); err == nil {
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// SyncUser upserts the session's profile into the store as a detached task.
// The sync is best-effort: rendering proceeds immediately, failures are
// logged and swallowed, and an identity without an email claim is skipped.
func SyncUser(users *service.UserService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity := IdentityFromContext(r.Context()); identity != nil && identity.Email != "" {
			go func(id auth.Identity) {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if _, err := users.UpsertUser(ctx, id.ClerkID, id.Email, id.Name, id.ImageURL); err != nil {
					slog.Error("sync user", "clerk_id", id.ClerkID, "error", err)
				}
			}(*identity)
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func authenticateRequest(r *http.Request, verifier auth.Verifier) (*auth.Identity, error) {
	token, err := tokenFromRequest(r)
	if err != nil {
		return nil, err
	}

	identity, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token, nil
		}
	}

	return "", http.ErrNoCookie
}
