package handler

import (
	"errors"
	"log/slog"
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/dmoren/saasbase/internal/domain"
	"github.com/dmoren/saasbase/internal/service"
	"github.com/dmoren/saasbase/internal/view"
)

// DashboardHandler renders the protected dashboard and its reactive
// profile fragment.
type DashboardHandler struct {
	users *service.UserService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(users *service.UserService) *DashboardHandler {
	return &DashboardHandler{users: users}
}

// HandleDashboard renders the dashboard page with the current profile.
// A missing profile is not an error: the sync task may still be running,
// so the page renders a placeholder that the SSE fragment replaces.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	user, err := h.users.GetCurrentUser(r.Context(), identity.ClerkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get current user for dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.DashboardPage(user).Render(r.Context(), w)
}

// HandleProfile patches the profile card via SSE. The dashboard polls this
// endpoint so webhook-driven changes show up without a reload.
func (h *DashboardHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())

	user, err := h.users.GetCurrentUser(r.Context(), identity.ClerkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("get current user for profile fragment", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.ProfileCard(user),
		datastar.WithSelectorID("profile-card"),
	)
}
