// Package endpoint resolves the GraphQL URL the console talks to.
//
// Two resolutions exist: Upstream is the server-side address the proxy
// and auth routes forward to; Resolve is the address client-side code
// posts to, which defaults to the same-origin proxy path.
package endpoint

import (
	"log"
	"net/url"
	"regexp"
	"strings"
)

const (
	// DefaultUpstream is the backend GraphQL service when nothing is
	// configured (local development).
	DefaultUpstream = "http://localhost:4000/graphql"

	// DefaultProxyPath is the same-origin proxy route.
	DefaultProxyPath = "/api/support-graphql"

	defaultOrigin = "http://localhost:3000"
)

// Runtime carries per-call context the resolver cannot read from the
// environment. BrowserOrigin is set when running on behalf of a page
// (e.g. "https://console.shopx.dev"); empty means server-side.
type Runtime struct {
	BrowserOrigin string
}

var absoluteURL = regexp.MustCompile(`(?i)^(http|https)://`)

func isAbsolute(v string) bool {
	return absoluteURL.MatchString(v)
}

// sanitize trims a raw env value and strips a trailing inline
// " #comment" suffix, which shows up when .env files are edited by
// hand. Returns "" when nothing usable remains.
func sanitize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if i := strings.Index(v, " #"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	// A tab before the hash counts too.
	if i := strings.Index(v, "\t#"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	return v
}

// lookupFirst returns the first non-empty sanitized value among keys.
func lookupFirst(lookup func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := sanitize(lookup(k)); v != "" {
			return v
		}
	}
	return ""
}

// Upstream returns the backend GraphQL endpoint for server-side
// forwarding. Explicit overrides win verbatim; the public endpoint is
// honored only when it is already absolute.
func Upstream(lookup func(string) string) string {
	if v := lookupFirst(lookup,
		"GRAPHQL_UPSTREAM_ENDPOINT",
		"BACKEND_GRAPHQL_ENDPOINT",
		"ECOMMERCE_BACKEND_GRAPHQL_URL",
	); v != "" {
		return v
	}

	if v := sanitize(lookup("PUBLIC_GRAPHQL_ENDPOINT")); isAbsolute(v) {
		return v
	}

	return DefaultUpstream
}

// Resolve returns the endpoint client-side code should POST operations
// to. Precedence: explicit override (must be absolute), public
// endpoint (must be absolute), then the same-origin proxy path
// absolutized against the resolved origin. Never panics; a malformed
// base leaves the relative path unresolved.
func Resolve(lookup func(string) string, rt Runtime) string {
	if v := lookupFirst(lookup,
		"GRAPHQL_UPSTREAM_ENDPOINT",
		"BACKEND_GRAPHQL_ENDPOINT",
		"ECOMMERCE_BACKEND_GRAPHQL_URL",
	); isAbsolute(v) {
		return v
	}

	if v := sanitize(lookup("PUBLIC_GRAPHQL_ENDPOINT")); isAbsolute(v) {
		return v
	}

	return absolutize(DefaultProxyPath, origin(lookup, rt))
}

// origin picks the base the relative proxy path resolves against.
func origin(lookup func(string) string, rt Runtime) string {
	if rt.BrowserOrigin != "" {
		return rt.BrowserOrigin
	}

	if v := lookupFirst(lookup,
		"SUPPORT_PROXY_ORIGIN",
		"PUBLIC_APP_BASE_URL",
		"APP_BASE_URL",
	); v != "" {
		return v
	}

	// Platform-provided deployment hosts come without a scheme.
	if v := sanitize(lookup("DEPLOYMENT_URL")); v != "" {
		if !isAbsolute(v) {
			v = "https://" + v
		}
		return v
	}

	return defaultOrigin
}

func absolutize(path, base string) string {
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		log.Printf("endpoint: unusable base %q, keeping %s relative: %v", base, path, err)
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		log.Printf("endpoint: unusable proxy path %q: %v", path, err)
		return path
	}
	return b.ResolveReference(ref).String()
}
