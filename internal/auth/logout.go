package auth

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const logoutMutation = `mutation AdminPortalLogout {
  logout
}`

type LogoutHandler struct {
	Upstream   string
	Client     *http.Client
	Logger     *log.Logger
	Production bool
}

func NewLogoutHandler(upstream string, production bool, logger *log.Logger) *LogoutHandler {
	return &LogoutHandler{
		Upstream:   upstream,
		Client:     &http.Client{Timeout: 20 * time.Second},
		Logger:     logger,
		Production: production,
	}
}

// ServeHTTP always answers 200 {ok:true}: logging out locally must
// succeed even when the backend is down. The upstream's cleared
// cookies are forwarded when available; otherwise a synthetic expired
// cookie evicts the session from the browser.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"ok":      false,
			"message": "Use POST to log out.",
		})
		return
	}

	var upstreamResp *http.Response

	reqBody, _ := json.Marshal(map[string]any{"query": logoutMutation})
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.Upstream, bytes.NewReader(reqBody))
	if err == nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Cache-Control", "no-store")
		if cookie := r.Header.Get("Cookie"); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
		upstreamResp, err = h.Client.Do(req)
	}
	if err != nil {
		h.logf("auth: logout upstream unreachable: %v", err)
		upstreamResp = nil
	}

	forwarded := false
	if upstreamResp != nil {
		defer upstreamResp.Body.Close()
		for _, cookie := range upstreamResp.Header.Values("Set-Cookie") {
			w.Header().Add("Set-Cookie", cookie)
			forwarded = true
		}
	}

	if !forwarded {
		w.Header().Add("Set-Cookie", expiredSessionCookie(h.Production))
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func expiredSessionCookie(production bool) string {
	cookie := SessionCookieName + "=; Path=/; Max-Age=0; HttpOnly; SameSite=Lax"
	if production {
		cookie += "; Secure"
	}
	return cookie
}

func (h *LogoutHandler) logf(format string, args ...any) {
	if h.Logger != nil {
		h.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
