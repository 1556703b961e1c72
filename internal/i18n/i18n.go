// Package i18n holds the localized strings the access layer itself
// needs: canned failure messages and the session-guard labels. The
// full console translation bundles live with the UI, not here.
package i18n

import (
	"golang.org/x/text/language"
)

var english = map[string]string{
	"errors.not_authorized":  "You are not authorised to perform this action.",
	"errors.rate_limited":    "Too many requests. Please try again later.",
	"errors.unavailable":     "The service is temporarily unavailable. Please try again later.",
	"session.guard.checking": "Checking your support session…",
	"session.guard.failed":   "We couldn't verify your support session.",
}

var french = map[string]string{
	"errors.not_authorized":  "Vous n'êtes pas autorisé à effectuer cette action.",
	"errors.rate_limited":    "Trop de requêtes. Veuillez réessayer plus tard.",
	"errors.unavailable":     "Le service est temporairement indisponible. Veuillez réessayer plus tard.",
	"session.guard.checking": "Vérification de votre session support…",
	"session.guard.failed":   "Impossible de vérifier votre session support.",
}

var (
	tags    = []language.Tag{language.English, language.French}
	tables  = []map[string]string{english, french}
	matcher = language.NewMatcher(tags)
)

// Locale answers T lookups for one negotiated language.
type Locale struct {
	table map[string]string
}

// Match negotiates the best locale for the caller's preferences
// (Accept-Language style values). Unknown or empty input falls back to
// English.
func Match(preferred ...string) *Locale {
	_, idx := language.MatchStrings(matcher, preferred...)
	return &Locale{table: tables[idx]}
}

// T returns the message for key, falling back to English and finally
// to the key itself so a missing entry never blanks the UI.
func (l *Locale) T(key string) string {
	if l != nil && l.table != nil {
		if msg, ok := l.table[key]; ok {
			return msg
		}
	}
	if msg, ok := english[key]; ok {
		return msg
	}
	return key
}
