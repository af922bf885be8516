package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	svix "github.com/svix/svix-webhooks/go"

	"github.com/dmoren/saasbase/internal/service"
)

// webhookSecretEnv names the environment variable holding the Clerk
// webhook signing secret.
const webhookSecretEnv = "CLERK_WEBHOOK_SECRET"

// clerkEvent is the payload shape Clerk delivers for user.* events.
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	} `json:"data"`
}

// WebhookHandler ingests Clerk webhook events. Signature verification is
// the sole authenticity gate on this path; no session is involved.
type WebhookHandler struct {
	users  *service.UserService
	secret func() string
}

// NewWebhookHandler creates a WebhookHandler. secret is consulted on every
// request; pass nil to read CLERK_WEBHOOK_SECRET from the environment, so a
// secret configured after startup is picked up without a restart.
func NewWebhookHandler(users *service.UserService, secret func() string) *WebhookHandler {
	if secret == nil {
		secret = func() string { return os.Getenv(webhookSecretEnv) }
	}
	return &WebhookHandler{users: users, secret: secret}
}

// HandleClerkWebhook verifies and dispatches one provider event.
// POST /clerk-webhook
// Responses: 500 (secret not configured), 400 (missing headers or bad
// signature), 200 "OK" (processed, including no-op events).
func (h *WebhookHandler) HandleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	secret := h.secret()
	if secret == "" {
		slog.Error("clerk webhook secret is not configured")
		http.Error(w, "Webhook secret not configured", http.StatusInternalServerError)
		return
	}

	if r.Header.Get("svix-id") == "" ||
		r.Header.Get("svix-timestamp") == "" ||
		r.Header.Get("svix-signature") == "" {
		http.Error(w, "Missing svix headers", http.StatusBadRequest)
		return
	}

	// The signature covers the exact bytes on the wire; verify the raw
	// body, never a re-serialization.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	wh, err := svix.NewWebhook(secret)
	if err != nil {
		slog.Error("construct webhook verifier", "error", err)
		http.Error(w, "Webhook secret not configured", http.StatusInternalServerError)
		return
	}

	var event clerkEvent
	if err := wh.Verify(body, r.Header); err != nil {
		slog.Error("webhook verification failed", "error", err)
		http.Error(w, "Invalid signature", http.StatusBadRequest)
		return
	}
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "Malformed event payload", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "user.created", "user.updated":
		email := primaryEmail(&event)
		if email == "" {
			// A user without an email address is not synchronized.
			break
		}
		name := fullName(event.Data.FirstName, event.Data.LastName)
		if _, err := h.users.UpsertUserFromWebhook(r.Context(), event.Data.ID, email, name, event.Data.ImageURL); err != nil {
			slog.Error("webhook upsert user", "clerk_id", event.Data.ID, "error", err)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
	case "user.deleted":
		if _, err := h.users.DeleteByClerkID(r.Context(), event.Data.ID); err != nil {
			slog.Error("webhook delete user", "clerk_id", event.Data.ID, "error", err)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
	default:
		// Unknown event types are ignored, not rejected.
	}

	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK")
}

func primaryEmail(event *clerkEvent) string {
	if len(event.Data.EmailAddresses) == 0 {
		return ""
	}
	return event.Data.EmailAddresses[0].EmailAddress
}

// fullName joins the provided name parts with a single space, omitting
// whichever are absent.
func fullName(first, last string) string {
	var parts []string
	if first != "" {
		parts = append(parts, first)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, " ")
}
