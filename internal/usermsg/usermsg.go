// Package usermsg turns the error soup of a failed call (HTTP status,
// GraphQL errors list, plain exception) into one short human-readable
// string. Raw stack traces and JSON dumps must never reach the UI.
package usermsg

import (
	"errors"
	"regexp"
	"strings"

	"shopx-support-console/internal/gqlclient"
	"shopx-support-console/internal/i18n"
)

var (
	graphqlPrefix = regexp.MustCompile(`^(?i)GraphQL Error(?:\s*\(.*\))?:\s*`)
	jsonSnippet   = regexp.MustCompile(`(?i)"response"\s*:\s*\{|"request"\s*:\s*\{`)
)

// Rule maps a known backend message to a friendlier replacement.
// Either Match or MatchFunc must be set; rules are checked in order.
type Rule struct {
	Match     *regexp.Regexp
	MatchFunc func(message string) bool
	Value     string
}

func (r Rule) matches(msg string) bool {
	if r.MatchFunc != nil {
		return r.MatchFunc(msg)
	}
	return r.Match != nil && r.Match.MatchString(msg)
}

// Sanitize strips the GraphQL client prefix from a raw message and
// rejects anything that looks like a serialized JSON diagnostic dump.
// The JSON heuristic is the historical one (a leading brace/bracket or
// a "response":{ / "request":{ fragment) and can misclassify a
// legitimate message that begins with "{".
func Sanitize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	cleaned := strings.TrimSpace(graphqlPrefix.ReplaceAllString(trimmed, ""))
	if cleaned == "" {
		return "", false
	}

	if jsonSnippet.MatchString(cleaned) ||
		strings.HasPrefix(cleaned, "{") ||
		strings.HasPrefix(cleaned, "[") {
		return "", false
	}

	return cleaned, true
}

func resolveKnown(msg string, rules []Rule) (string, bool) {
	for _, r := range rules {
		if r.matches(msg) {
			return r.Value, true
		}
	}
	return "", false
}

// UserMessage resolves err to a display string, falling back to
// fallback verbatim when nothing usable is found. It never panics.
func UserMessage(loc *i18n.Locale, err error, fallback string, rules ...Rule) string {
	var clientErr *gqlclient.ClientError
	if errors.As(err, &clientErr) {
		for _, item := range clientErr.Errors {
			msg, ok := Sanitize(item.Message)
			if !ok {
				continue
			}
			if known, hit := resolveKnown(msg, rules); hit {
				return known
			}
			return msg
		}

		switch status := clientErr.Status; {
		case status == 401 || status == 403:
			return loc.T("errors.not_authorized")
		case status == 429:
			return loc.T("errors.rate_limited")
		case status >= 500:
			return loc.T("errors.unavailable")
		}
	}

	if err != nil {
		if msg, ok := Sanitize(err.Error()); ok {
			if known, hit := resolveKnown(msg, rules); hit {
				return known
			}
			return msg
		}
	}

	return fallback
}
