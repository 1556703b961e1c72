// Package auth implements the console's login/logout routes and the
// edge middleware gating page routes on the session cookie. The
// credential itself lives in an HTTP-only cookie minted by the
// backend; this layer only brokers it.
package auth

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shopx-support-console/internal/usermsg"
)

// RoleSupport is the only role allowed into the console.
const RoleSupport = "SUPPORT"

const loginMutation = `mutation AdminPortalLogin($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    token
    user {
      id
      email
      name
      role
    }
  }
}`

type loginUpstreamResponse struct {
	Data *struct {
		Login *struct {
			Token string `json:"token"`
			User  *struct {
				ID    json.Number `json:"id"`
				Email string      `json:"email"`
				Name  *string     `json:"name"`
				Role  string      `json:"role"`
			} `json:"user"`
		} `json:"login"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type LoginHandler struct {
	Upstream string
	Client   *http.Client
	Logger   *log.Logger
}

func NewLoginHandler(upstream string, logger *log.Logger) *LoginHandler {
	return &LoginHandler{
		Upstream: upstream,
		Client:   &http.Client{Timeout: 20 * time.Second},
		Logger:   logger,
	}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"ok":      false,
			"message": "Use POST to log in.",
		})
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":      false,
			"message": "Email and password are required.",
		})
		return
	}

	reqBody, _ := json.Marshal(map[string]any{
		"query": loginMutation,
		"variables": map[string]any{
			"email":    creds.Email,
			"password": creds.Password,
		},
	})

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.Upstream, bytes.NewReader(reqBody))
	if err != nil {
		h.unavailable(w, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := h.Client.Do(req)
	if err != nil {
		h.unavailable(w, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.unavailable(w, nil)
		return
	}

	var payload loginUpstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		h.unavailable(w, err)
		return
	}

	if len(payload.Errors) > 0 {
		message := "Invalid email or password."
		if friendly, ok := usermsg.Sanitize(payload.Errors[0].Message); ok {
			message = friendly
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"ok":      false,
			"message": message,
		})
		return
	}

	var session *struct {
		Token string `json:"token"`
		User  *struct {
			ID    json.Number `json:"id"`
			Email string      `json:"email"`
			Name  *string     `json:"name"`
			Role  string      `json:"role"`
		} `json:"user"`
	}
	if payload.Data != nil {
		session = payload.Data.Login
	}

	if session == nil || session.Token == "" || session.User == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"ok":      false,
			"message": "Login failed.",
		})
		return
	}

	// The role gate: a valid customer credential must not open the
	// console, and no session cookie may leak on the refusal.
	if session.User.Role != RoleSupport {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"ok":      false,
			"message": "Only support agents can access the admin portal.",
		})
		return
	}

	for _, cookie := range resp.Header.Values("Set-Cookie") {
		w.Header().Add("Set-Cookie", cookie)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"user": map[string]any{
			"id":    session.User.ID,
			"email": session.User.Email,
			"name":  session.User.Name,
			"role":  session.User.Role,
		},
	})
}

func (h *LoginHandler) unavailable(w http.ResponseWriter, err error) {
	if err != nil {
		h.logf("auth %s: login upstream: %v", uuid.NewString(), err)
	}
	writeJSON(w, http.StatusBadGateway, map[string]any{
		"ok":      false,
		"message": "Authentication service unavailable.",
	})
}

func (h *LoginHandler) logf(format string, args ...any) {
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
