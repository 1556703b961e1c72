package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

type graphQLRequest struct {
	Query     string    `json:"query"`
	Variables Variables `json:"variables,omitempty"`
	Operation string    `json:"operationName,omitempty"`
}

// Executor runs registered operations against one endpoint. The
// cookie jar carries the session cookie across calls so authenticated
// requests travel without explicit credential plumbing. Safe for
// concurrent use.
type Executor struct {
	endpoint string
	http     *http.Client

	mu        sync.RWMutex
	authToken string
}

func NewExecutor(endpoint string) *Executor {
	jar, _ := cookiejar.New(nil)
	return &Executor{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: 20 * time.Second,
			Jar:     jar,
		},
	}
}

func (x *Executor) Endpoint() string { return x.endpoint }

// SetAuthToken sets or clears (empty string) the bearer token attached
// to every call.
func (x *Executor) SetAuthToken(token string) {
	x.mu.Lock()
	x.authToken = token
	x.mu.Unlock()
}

// Execute runs the descriptor's pipeline: pre-process hooks over the
// variables, the network call, error extraction, post-process hooks
// over the envelope.
//
// Failure semantics: when the upstream answered with a GraphQL errors
// list the structured errors land in the returned envelope, unless the
// descriptor demands ThrowOnErrors, in which case the *ClientError is
// returned as the error. An HTTP failure without a structured body
// also returns a *ClientError (empty Errors, status and raw body set)
// so auth-sensitive callers can react to a bare 401. Network and
// decode failures propagate as plain errors. No retries happen here.
func (x *Executor) Execute(ctx context.Context, d *Descriptor, vars Variables) (*Envelope, error) {
	var err error
	if vars != nil {
		for _, hook := range d.PreProcess {
			if vars, err = hook(ctx, vars); err != nil {
				return nil, fmt.Errorf("%s: pre-process: %w", d.Name, err)
			}
		}
		for _, hook := range d.PreProcessClient {
			if vars, err = hook(ctx, vars); err != nil {
				return nil, fmt.Errorf("%s: pre-process: %w", d.Name, err)
			}
		}
	}

	env, err := x.post(ctx, d, vars)
	if err != nil {
		return nil, err
	}

	if vars != nil {
		for _, hook := range d.PostProcess {
			if env, err = hook(ctx, env); err != nil {
				return nil, fmt.Errorf("%s: post-process: %w", d.Name, err)
			}
		}
		for _, hook := range d.PostProcessClient {
			if env, err = hook(ctx, env); err != nil {
				return nil, fmt.Errorf("%s: post-process: %w", d.Name, err)
			}
		}
	}
	return env, nil
}

func (x *Executor) post(ctx context.Context, d *Descriptor, vars Variables) (*Envelope, error) {
	reqBody, err := json.Marshal(graphQLRequest{
		Query:     d.Text,
		Variables: vars,
		Operation: d.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", d.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", d.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	x.mu.RLock()
	if x.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+x.authToken)
	}
	x.mu.RUnlock()

	resp, err := x.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request: %w", d.Name, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", d.Name, err)
	}

	var env Envelope
	decodeErr := json.Unmarshal(b, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if ok && decodeErr != nil {
		return nil, fmt.Errorf("%s: decode envelope: %w", d.Name, decodeErr)
	}
	if !ok && (decodeErr != nil || len(env.Errors) == 0) {
		// Non-GraphQL HTTP failure (gateway page, empty body, ...).
		// The status still travels with the error.
		return nil, fmt.Errorf("%s: %w", d.Name, &ClientError{
			Status: resp.StatusCode,
			Body:   string(b),
		})
	}

	if len(env.Errors) > 0 {
		clientErr := &ClientError{
			Status: resp.StatusCode,
			Errors: env.Errors,
			Data:   env.Data,
			Body:   string(b),
		}
		if d.ThrowOnErrors {
			return nil, clientErr
		}
		return clientErr.Envelope(), nil
	}

	return &env, nil
}
