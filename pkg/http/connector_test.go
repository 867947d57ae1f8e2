package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoBody struct {
	Value string `json:"value"`
}

func TestDoRequestSendsHeadersAndDecodes(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		var in echoBody
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(echoBody{Value: "echo " + in.Value})
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL + "/", Logger: zap.NewNop()},
		WithAuthToken("secret"),
		WithStaticHeaders(map[string]string{"X-Title": "Idea Navigator", "X-Empty": ""}),
		WithRequestLogging(),
	)

	var out echoBody
	err := c.DoRequest(context.Background(), http.MethodPost, "/v1/echo", echoBody{Value: "hi"}, &out,
		WithHeader("X-Request", "1"))
	require.NoError(t, err)

	assert.Equal(t, "echo hi", out.Value)
	require.NotNil(t, got)
	assert.Equal(t, "/v1/echo", got.URL.Path)
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.Equal(t, "Idea Navigator", got.Header.Get("X-Title"))
	assert.Empty(t, got.Header.Values("X-Empty"))
	assert.Equal(t, "1", got.Header.Get("X-Request"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})

	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "HTTP 429")
}

func TestDoRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithRequestTimeout(20*time.Millisecond))

	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestDoRequestOverrideURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: "http://127.0.0.1:1", Logger: zap.NewNop()})

	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/ignored", nil, nil, WithURL(srv.URL+"/other")))
	assert.Equal(t, "/other", path)
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("X-Title", "app")

	out := redactHeaders(h)

	assert.Equal(t, "[REDACTED]", out.Get("Authorization"))
	assert.Equal(t, "app", out.Get("X-Title"))
	assert.Equal(t, "Bearer secret", h.Get("Authorization"))
}

func TestWithAuthTokenEmptySendsNoHeader(t *testing.T) {
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Values("Authorization")
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()}, WithAuthToken(""))

	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
	assert.Empty(t, auth)
}
