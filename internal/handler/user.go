package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmoren/saasbase/internal/domain"
	"github.com/dmoren/saasbase/internal/service"
)

// UserHandler exposes the user operations as a JSON API.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleMe returns the current user's profile, or null if it has not been
// synchronized yet.
// GET /api/users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	user, err := h.users.GetCurrentUser(r.Context(), identity.ClerkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"user": nil})
			return
		}
		slog.Error("get current user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleSync upserts the current user's profile. The clerk ID comes from
// the session, never from the request body.
// POST /api/users/sync
// Request:  {"email":"...","name":"...","imageUrl":"..."}
// Response: {"id": ...}
func (h *UserHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.users.UpsertUser(r.Context(), identity.ClerkID, req.Email, req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("upsert user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// HandleUpdateMe patches only the provided fields of an existing profile.
// Email cannot be changed through this endpoint.
// PATCH /api/users/me
// Request:  {"name":"...","imageUrl":"..."} (both optional)
// Response: {"id": ...} or 404 when no profile exists yet
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	var req struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	id, err := h.users.UpdateCurrentUser(r.Context(), identity.ClerkID, req.Name, req.ImageURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not synchronized yet.")
			return
		}
		slog.Error("update current user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}
