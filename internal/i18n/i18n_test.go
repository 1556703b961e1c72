package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchNegotiatesLocale(t *testing.T) {
	require.Equal(t, "Trop de requêtes. Veuillez réessayer plus tard.", Match("fr").T("errors.rate_limited"))
	require.Equal(t, "Too many requests. Please try again later.", Match("en-US").T("errors.rate_limited"))
	require.Equal(t, "Trop de requêtes. Veuillez réessayer plus tard.", Match("fr-CA,fr;q=0.9,en;q=0.5").T("errors.rate_limited"))
}

func TestMatchUnknownFallsBackToEnglish(t *testing.T) {
	require.Equal(t, "Too many requests. Please try again later.", Match("de").T("errors.rate_limited"))
	require.Equal(t, "Too many requests. Please try again later.", Match().T("errors.rate_limited"))
}

func TestTMissingKeyFallsBackToKey(t *testing.T) {
	require.Equal(t, "errors.no_such_key", Match("fr").T("errors.no_such_key"))
}

func TestTNilLocaleIsSafe(t *testing.T) {
	var loc *Locale
	require.Equal(t, "Checking your support session…", loc.T("session.guard.checking"))
}
