package gqlclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorLocation points into the operation source.
type ErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ResponseError is one entry of a GraphQL errors list.
type ResponseError struct {
	Message    string          `json:"message"`
	Locations  []ErrorLocation `json:"locations,omitempty"`
	Path       []any           `json:"path,omitempty"`
	Extensions map[string]any  `json:"extensions,omitempty"`
}

// Envelope is the {data, errors} wrapper every call returns. Both
// fields may be populated at once (partial failure).
type Envelope struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// DecodeData unmarshals the data payload into out. A null or absent
// payload leaves out untouched.
func (e *Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// JoinErrors collapses an errors list into one message, the shape
// stores surface to callers.
func JoinErrors(errs []ResponseError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// ClientError is returned when the upstream itself produced a failure:
// a GraphQL-shaped one (an errors list, possibly with partial data) or
// a bare non-2xx status without a structured body (Errors empty, raw
// Body kept). Network and decode failures stay plain errors.
type ClientError struct {
	Status int
	Errors []ResponseError
	Data   json.RawMessage
	Body   string
}

func (e *ClientError) Error() string {
	if msg := JoinErrors(e.Errors); msg != "" {
		return fmt.Sprintf("graphql request failed (status %d): %s", e.Status, msg)
	}
	if e.Body != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, snippet(e.Body))
	}
	return fmt.Sprintf("graphql request failed (status %d)", e.Status)
}

func snippet(s string) string {
	const max = 200
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// Envelope converts the error into the degraded envelope handed to
// callers that opted out of hard failures.
func (e *ClientError) Envelope() *Envelope {
	return &Envelope{Data: e.Data, Errors: e.Errors}
}
