package handler

import (
	"net/http"

	"github.com/dmoren/saasbase/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	name := ""
	if identity := IdentityFromContext(r.Context()); identity != nil {
		name = identity.Name
		if name == "" {
			name = identity.Email
		}
	}
	view.HomePage(name).Render(r.Context(), w)
}

// HandleSignIn renders the hosted sign-in page.
func HandleSignIn(w http.ResponseWriter, r *http.Request) {
	view.SignInPage().Render(r.Context(), w)
}

// HandleSignUp renders the hosted sign-up page.
func HandleSignUp(w http.ResponseWriter, r *http.Request) {
	view.SignUpPage().Render(r.Context(), w)
}
