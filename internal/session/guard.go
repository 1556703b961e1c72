// Package session implements the client-side gate that verifies the
// support session before protected views render.
package session

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/i18n"
	"shopx-support-console/internal/queries"
	"shopx-support-console/internal/usermsg"
)

type Status string

const (
	StatusChecking    Status = "checking"
	StatusReady       Status = "ready"
	StatusError       Status = "error"
	StatusRedirecting Status = "redirecting"
)

// supportAuthError is the backend's fixed marker for a missing or
// expired support session.
var supportAuthError = regexp.MustCompile(`(?i)support authentication required`)

// Navigator abstracts the host environment's navigation. Replace must
// not push a history entry; bounced users should not "back" into the
// guard loop.
type Navigator interface {
	Replace(target string)
}

// Location reports the current path and raw query, used to preserve
// the destination across the login bounce.
type Location func() (path, query string)

// Guard verifies the session exactly once per Run. It never polls.
type Guard struct {
	exec     *gqlclient.Executor
	nav      Navigator
	loc      *i18n.Locale
	location Location

	mu         sync.Mutex
	status     Status
	errMessage string
}

func NewGuard(exec *gqlclient.Executor, nav Navigator, loc *i18n.Locale, location Location) *Guard {
	return &Guard{
		exec:     exec,
		nav:      nav,
		loc:      loc,
		location: location,
		status:   StatusChecking,
	}
}

func (g *Guard) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// ErrMessage is the localized failure text shown in the error state.
func (g *Guard) ErrMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errMessage
}

// Run issues the session probe and settles the guard into ready,
// error, or redirecting. A canceled ctx suppresses every state commit,
// so an unmounted guard never mutates itself or navigates.
func (g *Guard) Run(ctx context.Context) {
	env, err := g.exec.Execute(ctx, queries.Session, nil)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		if isUnauthorized(err) {
			g.redirectToLogin(ctx)
			return
		}

		fallback := g.loc.T("session.guard.failed")
		message := usermsg.UserMessage(g.loc, err, fallback, usermsg.Rule{
			Match: supportAuthError,
			Value: fallback,
		})
		g.commit(ctx, StatusError, message)
		return
	}

	if hasAuthError(env.Errors) || !hasSupportContext(env) {
		g.redirectToLogin(ctx)
		return
	}

	g.commit(ctx, StatusReady, "")
}

func (g *Guard) redirectToLogin(ctx context.Context) {
	if !g.commit(ctx, StatusRedirecting, "") {
		return
	}

	destination := "/dashboard"
	if g.location != nil {
		path, query := g.location()
		d := path
		if query != "" {
			d += "?" + query
		}
		if d = strings.TrimSuffix(d, "/"); d != "" {
			destination = d
		}
	}

	params := url.Values{}
	params.Set("redirect", destination)
	g.nav.Replace("/login?" + params.Encode())
}

// commit atomically applies a state transition unless ctx was
// canceled. Reports whether the transition happened.
func (g *Guard) commit(ctx context.Context, status Status, errMessage string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	g.status = status
	g.errMessage = errMessage
	return true
}

func hasAuthError(errs []gqlclient.ResponseError) bool {
	for _, e := range errs {
		if supportAuthError.MatchString(e.Message) {
			return true
		}
	}
	return false
}

func hasSupportContext(env *gqlclient.Envelope) bool {
	var payload struct {
		CustomerSupport *struct {
			Typename string `json:"__typename"`
		} `json:"customerSupport"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return false
	}
	return payload.CustomerSupport != nil
}

func isUnauthorized(err error) bool {
	var clientErr *gqlclient.ClientError
	if errors.As(err, &clientErr) {
		if clientErr.Status == 401 || clientErr.Status == 403 {
			return true
		}
		return hasAuthError(clientErr.Errors)
	}
	return err != nil && supportAuthError.MatchString(err.Error())
}
