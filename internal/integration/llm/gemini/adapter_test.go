package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url, token string) config.GeminiConfig {
	return config.GeminiConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 token,
			Url:                   url,
		},
	}
}

func testCall() completion.Call {
	return completion.Call{
		SystemInstruction: "You are an advisor",
		Conversation: []entity.Message{
			{Role: entity.RoleUser, Content: "I want to build a tutor app"},
			{Role: entity.RoleAssistant, Content: "Tell me more"},
			{Role: entity.RoleUser, Content: "For kids"},
		},
		Model:           "gemini-1.5-flash",
		MaxOutputTokens: 1000,
		Temperature:     0.7,
	}
}

func newServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), r.URL.Path)
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInvokeSuccess(t *testing.T) {
	var seen map[string]any
	srv := newServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Great idea. "},{"text":"Start small."}]}}]}`, &seen)

	a, err := NewAdapter(context.Background(), testConfig(srv.URL, "gm-key"), zap.NewNop())
	require.NoError(t, err)

	res := a.Invoke(context.Background(), testCall())

	require.Equal(t, entity.OutcomeSuccess, res.Outcome, res.ErrorDetail)
	assert.Equal(t, "Great idea. Start small.", res.Text)
	assert.Equal(t, Name, res.Provider)

	contents, ok := seen["contents"].([]any)
	require.True(t, ok)
	assert.Len(t, contents, 3)
	assert.Contains(t, seen, "systemInstruction")
}

func TestInvokeNoCandidatesIsEmpty(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"candidates":[]}`, nil)

	a, err := NewAdapter(context.Background(), testConfig(srv.URL, "gm-key"), zap.NewNop())
	require.NoError(t, err)

	res := a.Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeEmpty, res.Outcome)
}

func TestInvokeServerErrorIsError(t *testing.T) {
	srv := newServer(t, http.StatusServiceUnavailable,
		`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`, nil)

	a, err := NewAdapter(context.Background(), testConfig(srv.URL, "gm-key"), zap.NewNop())
	require.NoError(t, err)

	res := a.Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeError, res.Outcome)
	assert.NotEmpty(t, res.ErrorDetail)
}

func TestInvokeMissingKey(t *testing.T) {
	a, err := NewAdapter(context.Background(), testConfig("", ""), zap.NewNop())
	require.NoError(t, err)

	res := a.Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeError, res.Outcome)
	assert.Equal(t, llm.MissingKeyDetail, res.ErrorDetail)
}

func TestInvokeEmptyConversation(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{}`, nil)
	a, err := NewAdapter(context.Background(), testConfig(srv.URL, "gm-key"), zap.NewNop())
	require.NoError(t, err)

	call := testCall()
	call.Conversation = nil
	res := a.Invoke(context.Background(), call)

	assert.Equal(t, entity.OutcomeError, res.Outcome)
}
