// Package view renders the server-side pages as templ components.
package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmoren/saasbase/internal/domain"
)

// layout wraps page content with the shared document shell. The datastar
// bundle is loaded on every page so fragments can be patched over SSE.
func layout(title string, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
</head>
<body>
`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// HomePage renders the landing page. name is empty for anonymous visitors.
func HomePage(name string) templ.Component {
	return layout("SaaSBase", func(_ context.Context, w io.Writer) error {
		nav := `<a href="/sign-in">Sign in</a> <a href="/sign-up">Sign up</a>`
		if name != "" {
			nav = fmt.Sprintf(`<span>Hello, %s</span> <a href="/dashboard">Dashboard</a>`, templ.EscapeString(name))
		}
		_, err := fmt.Fprintf(w, `<header class="nav"><h1>SaaSBase</h1><nav>%s</nav></header>
<main>
<p>A starter kit: sign in, get your profile synchronized, build your product.</p>
</main>
`, nav)
		return err
	})
}

// SignInPage renders the hosted sign-in page.
func SignInPage() templ.Component {
	return authPage("Sign in", "sign-in")
}

// SignUpPage renders the hosted sign-up page.
func SignUpPage() templ.Component {
	return authPage("Sign up", "sign-up")
}

func authPage(title, component string) templ.Component {
	return layout(title, func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<main class="auth">
<div id="clerk-%s" data-clerk-component="%s"></div>
<noscript>JavaScript is required to sign in.</noscript>
</main>
`, component, component)
		return err
	})
}

// DashboardPage renders the protected dashboard. The profile card polls
// /dashboard/profile so it reflects webhook-driven changes without a reload.
func DashboardPage(user *domain.User) templ.Component {
	return layout("Dashboard", func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="nav"><h1>Dashboard</h1><nav><a href="/">Home</a></nav></header>
<main data-on-interval__duration.5s="@get('/dashboard/profile')">
`); err != nil {
			return err
		}
		if err := ProfileCard(user).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<section class="card">
<h2>Real-time updates</h2>
<p>This dashboard updates automatically when your profile changes.</p>
</section>
</main>
`)
		return err
	})
}

// ProfileCard renders the current profile. It is both embedded in the
// dashboard page and sent as an SSE patch fragment.
func ProfileCard(user *domain.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if user == nil {
			_, err := io.WriteString(w, `<section id="profile-card" class="card"><h2>Welcome</h2><p>Syncing your profile…</p></section>`)
			return err
		}

		display := user.Name
		if display == "" {
			display = user.Email
		}

		avatar := ""
		if user.ImageURL != "" {
			avatar = fmt.Sprintf(`<img src="%s" alt="" class="avatar">`, templ.EscapeString(user.ImageURL))
		}

		_, err := fmt.Fprintf(w, `<section id="profile-card" class="card">
<h2>Welcome</h2>
%s<p>Hello, %s!</p>
<p class="muted">%s</p>
</section>`, avatar, templ.EscapeString(display), templ.EscapeString(user.Email))
		return err
	})
}
