package gqlclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var probe = MustDescriptor(DescriptorConfig{
	Name:      "Probe",
	Operation: `query Probe($id: ID) { customerSupport { order(orderId: $id) { id status } } }`,
})

var strictProbe = MustDescriptor(DescriptorConfig{
	Name:          "StrictProbe",
	Kind:          Mutation,
	Operation:     `mutation StrictProbe { customerSupport { deleteProduct(id: "1") } }`,
	ThrowOnErrors: true,
})

// capture holds the last request seen by captureServer. Accessors are
// mutex-guarded so tests can read them after the client call returns.
type capture struct {
	mu     sync.Mutex
	header http.Header
	body   []byte
}

func (c *capture) Header() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

func (c *capture) Body() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

// captureServer records the last request headers and body and answers
// with a fixed JSON body and status.
func captureServer(t *testing.T, status int, body string) (*httptest.Server, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request: %v", err)
		}
		rec.mu.Lock()
		rec.body = b
		rec.header = r.Header.Clone()
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestExecuteReturnsDataEnvelope(t *testing.T) {
	srv, rec := captureServer(t, 200, `{"data":{"customerSupport":{"order":{"id":"7","status":"PAID"}}}}`)
	x := NewExecutor(srv.URL)

	env, err := x.Execute(context.Background(), probe, Variables{"id": "7"})
	require.NoError(t, err)
	require.Empty(t, env.Errors)

	var payload struct {
		CustomerSupport struct {
			Order struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"order"`
		} `json:"customerSupport"`
	}
	require.NoError(t, env.DecodeData(&payload))
	require.Equal(t, "7", payload.CustomerSupport.Order.ID)

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var wire struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
		Operation string         `json:"operationName"`
	}
	require.NoError(t, json.Unmarshal(rec.Body(), &wire))
	require.Equal(t, "Probe", wire.Operation)
	require.Equal(t, probe.Text, wire.Query)
	require.Equal(t, "7", wire.Variables["id"])
}

func TestExecuteAttachesBearerToken(t *testing.T) {
	srv, rec := captureServer(t, 200, `{"data":null}`)
	x := NewExecutor(srv.URL)
	x.SetAuthToken("tok-123")

	_, err := x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", rec.Header().Get("Authorization"))

	x.SetAuthToken("")
	_, err = x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.NoError(t, err)
	require.Empty(t, rec.Header().Get("Authorization"))
}

func TestExecuteSoftErrorsLandInEnvelope(t *testing.T) {
	srv, _ := captureServer(t, 200, `{"data":{"partial":true},"errors":[{"message":"field blew up"}]}`)
	x := NewExecutor(srv.URL)

	env, err := x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.NoError(t, err)
	require.Len(t, env.Errors, 1)
	require.Equal(t, "field blew up", env.Errors[0].Message)
	// Partial data survives next to the errors.
	require.JSONEq(t, `{"partial":true}`, string(env.Data))
}

func TestExecuteThrowOnErrorsReturnsClientError(t *testing.T) {
	srv, _ := captureServer(t, 200, `{"errors":[{"message":"Product not found"},{"message":"second"}]}`)
	x := NewExecutor(srv.URL)

	_, err := x.Execute(context.Background(), strictProbe, Variables{"id": "1"})
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	require.Equal(t, 200, clientErr.Status)
	require.Len(t, clientErr.Errors, 2)
}

func TestExecuteGraphQLShapedFailureStatusPreserved(t *testing.T) {
	srv, _ := captureServer(t, 401, `{"errors":[{"message":"Support authentication required"}]}`)
	x := NewExecutor(srv.URL)

	// A non-throwing descriptor still surfaces the structured errors.
	env, err := x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.NoError(t, err)
	require.Len(t, env.Errors, 1)

	_, err = x.Execute(context.Background(), strictProbe, Variables{"id": "1"})
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	require.Equal(t, 401, clientErr.Status)
}

func TestExecuteNonGraphQLFailureCarriesStatus(t *testing.T) {
	srv, _ := captureServer(t, 502, `<html>bad gateway</html>`)
	x := NewExecutor(srv.URL)

	_, err := x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.Error(t, err)
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	require.Equal(t, 502, clientErr.Status)
	require.Empty(t, clientErr.Errors)
	require.Equal(t, `<html>bad gateway</html>`, clientErr.Body)
	require.Contains(t, err.Error(), "502")
}

func TestExecuteBareUnauthorizedCarriesStatus(t *testing.T) {
	srv, _ := captureServer(t, 401, `unauthorized`)
	x := NewExecutor(srv.URL)

	// A 401 with a plain-text body has no errors list to inspect; the
	// status on the error is all a caller gets.
	_, err := x.Execute(context.Background(), probe, Variables{"id": "1"})
	require.Error(t, err)
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	require.Equal(t, 401, clientErr.Status)
	require.Empty(t, clientErr.Errors)
}

func TestExecutePreProcessHooksRunInOrder(t *testing.T) {
	srv, rec := captureServer(t, 200, `{"data":null}`)
	x := NewExecutor(srv.URL)

	d := MustDescriptor(DescriptorConfig{
		Name:      "Hooked",
		Operation: `query Hooked($tag: String) { customerSupport { __typename } }`,
		PreProcess: []VarsHook{
			func(ctx context.Context, vars Variables) (Variables, error) {
				vars["tag"] = "first"
				return vars, nil
			},
		},
		PreProcessClient: []VarsHook{
			func(ctx context.Context, vars Variables) (Variables, error) {
				vars["tag"] = vars["tag"].(string) + "+second"
				return vars, nil
			},
		},
	})

	_, err := x.Execute(context.Background(), d, Variables{})
	require.NoError(t, err)

	var wire struct {
		Variables map[string]any `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body(), &wire))
	require.Equal(t, "first+second", wire.Variables["tag"])
}

func TestExecuteNilVariablesSkipHooks(t *testing.T) {
	srv, _ := captureServer(t, 200, `{"data":{"customerSupport":{"__typename":"CustomerSupport"}}}`)
	x := NewExecutor(srv.URL)

	d := MustDescriptor(DescriptorConfig{
		Name:      "NoVars",
		Operation: `query NoVars { customerSupport { __typename } }`,
		PreProcess: []VarsHook{
			func(ctx context.Context, vars Variables) (Variables, error) {
				t.Error("hook must not run for nil variables")
				return vars, nil
			},
		},
	})

	_, err := x.Execute(context.Background(), d, nil)
	require.NoError(t, err)
}

func TestExecuteHookErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("network call must not happen when a pre-process hook fails")
	}))
	t.Cleanup(srv.Close)
	x := NewExecutor(srv.URL)

	d := MustDescriptor(DescriptorConfig{
		Name:      "Failing",
		Operation: `query Failing { customerSupport { __typename } }`,
		PreProcess: []VarsHook{
			func(ctx context.Context, vars Variables) (Variables, error) {
				return nil, errors.New("boom")
			},
		},
	})

	_, err := x.Execute(context.Background(), d, Variables{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestDecodeDataIgnoresNull(t *testing.T) {
	env := &Envelope{Data: json.RawMessage("null")}
	out := map[string]any{"keep": true}
	require.NoError(t, env.DecodeData(&out))
	require.True(t, out["keep"].(bool))
}
