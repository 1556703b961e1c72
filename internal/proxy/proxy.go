// Package proxy exposes the single externally reachable GraphQL
// endpoint of the console. It forwards browser POSTs to the upstream
// service while preserving the session cookie and filtering
// hop-by-hop headers in both directions.
package proxy

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// markerHeader identifies calls coming through the support console so
// the backend can distinguish them from storefront traffic.
const markerHeader = "X-ShopX-Support-Session"

// hopByHop headers are meaningful only on the immediate connection and
// must not be blindly forwarded.
var hopByHop = map[string]struct{}{
	"connection":          {},
	"keep-alive":          {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"te":                  {},
	"trailer":             {},
	"transfer-encoding":   {},
	"upgrade":             {},
}

type Handler struct {
	Upstream string
	Client   *http.Client
	Logger   *log.Logger
}

// NewHandler builds a proxy for upstream. Redirects are never
// followed: a redirect from a JSON API is itself an error condition
// the caller must see.
func NewHandler(upstream string, logger *log.Logger) *Handler {
	return &Handler{
		Upstream: upstream,
		Client: &http.Client{
			Timeout: 20 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.forward(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"ok":      false,
			"message": "Use POST for GraphQL operations.",
		})
	case http.MethodOptions:
		// CORS preflight compatibility; never forwarded upstream.
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"ok":      false,
			"message": "Use POST for GraphQL operations.",
		})
	}
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":      false,
			"message": "Unable to read request body.",
		})
		return
	}

	// The body travels verbatim; re-serializing it risks encoding
	// drift between what the browser signed off on and what the
	// backend sees.
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.Upstream, strings.NewReader(string(body)))
	if err != nil {
		h.logf("proxy: build upstream request: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"ok":      false,
			"message": "Failed to contact GraphQL upstream.",
		})
		return
	}

	req.Header.Set("Content-Type", headerOrDefault(r, "Content-Type", "application/json"))
	req.Header.Set("Accept", headerOrDefault(r, "Accept", "application/json"))
	req.Header.Set(markerHeader, "1")
	req.Header.Set("Cache-Control", "no-store")

	for _, name := range []string{"Cookie", "Authorization", "Origin"} {
		if v := r.Header.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		h.logf("proxy %s: upstream unreachable: %v", uuid.NewString(), err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"ok":      false,
			"message": "Failed to contact GraphQL upstream.",
		})
		return
	}
	defer resp.Body.Close()

	copyUpstreamHeaders(resp.Header, w.Header())
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logf("proxy: stream upstream body: %v", err)
	}
}

// copyUpstreamHeaders copies every upstream header except the
// hop-by-hop set. Set-Cookie values are appended, not overwritten,
// because the upstream may emit more than one.
func copyUpstreamHeaders(src, dst http.Header) {
	for name, values := range src {
		lower := strings.ToLower(name)
		if _, skip := hopByHop[lower]; skip {
			continue
		}
		if lower == "set-cookie" {
			for _, v := range values {
				dst.Add("Set-Cookie", v)
			}
			continue
		}
		dst[http.CanonicalHeaderKey(name)] = values
	}
}

func headerOrDefault(r *http.Request, name, fallback string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return fallback
}

func (h *Handler) logf(format string, args ...any) {
	if h.Logger != nil {
		h.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
