package auth

import (
	"net/http"
	"net/url"
	"strings"
)

// SessionCookieName is the HTTP-only cookie minted by the backend on
// login.
const SessionCookieName = "sid"

// SessionMiddleware gates page routes at the edge: requests without a
// session cookie are bounced to the login page with the requested
// destination preserved. It checks only cookie presence; validity is
// the in-app session guard's job.
type SessionMiddleware struct {
	LoginPath string // defaults to /login
	HomePath  string // defaults to /dashboard
}

func (m SessionMiddleware) loginPath() string {
	if m.LoginPath != "" {
		return m.LoginPath
	}
	return "/login"
}

func (m SessionMiddleware) homePath() string {
	if m.HomePath != "" {
		return m.HomePath
	}
	return "/dashboard"
}

func (m SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// API routes and static assets pass through untouched. The
		// GraphQL proxy answers unauthenticated calls with upstream
		// errors, not redirects, so the in-app guard can see them.
		if strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/favicon") {
			next.ServeHTTP(w, r)
			return
		}

		_, err := r.Cookie(SessionCookieName)
		hasSession := err == nil

		if path == m.loginPath() {
			if hasSession {
				http.Redirect(w, r, m.homePath(), http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !hasSession {
			http.Redirect(w, r, m.loginRedirect(r), http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loginRedirect builds /login?redirect=<destination>, where the
// destination is the current path+query with a trailing slash trimmed,
// defaulting to the home page.
func (m SessionMiddleware) loginRedirect(r *http.Request) string {
	destination := r.URL.Path
	if r.URL.RawQuery != "" {
		destination += "?" + r.URL.RawQuery
	}
	destination = strings.TrimSuffix(destination, "/")
	if destination == "" {
		destination = m.homePath()
	}

	q := url.Values{}
	q.Set("redirect", destination)
	return m.loginPath() + "?" + q.Encode()
}
