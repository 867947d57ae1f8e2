package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

func testConfig(url, token string) config.OpenRouterConfig {
	return config.OpenRouterConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Token:                 token,
			Url:                   url,
		},
		SiteURL: "http://localhost:3000",
		AppName: "Idea Navigator",
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
		Model:           "google/gemini-2.0-flash-lite-preview-02-05:free",
		MaxOutputTokens: 1000,
		Temperature:     0.7,
	}
}

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestInvokeSuccess(t *testing.T) {
	var got chatRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"1. Idea A\n2. Idea B"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL+"/api/v1", "sk-or-test"), zap.NewNop())
	res := a.Invoke(context.Background(), testCall())

	require.Equal(t, entity.OutcomeSuccess, res.Outcome, res.ErrorDetail)
	assert.Equal(t, "1. Idea A\n2. Idea B", res.Text)
	assert.Equal(t, Name, res.Provider)

	assert.Equal(t, "Bearer sk-or-test", headers.Get("Authorization"))
	assert.Equal(t, "http://localhost:3000", headers.Get("HTTP-Referer"))
	assert.Equal(t, "Idea Navigator", headers.Get("X-Title"))

	assert.Equal(t, "google/gemini-2.0-flash-lite-preview-02-05:free", got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You are an advisor", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "For kids", got.Messages[3].Content)
}

func TestInvokeNoChoicesIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"m","choices":[]}`))
	}))
	defer srv.Close()

	res := NewAdapter(testConfig(srv.URL, "key"), zap.NewNop()).Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeEmpty, res.Outcome)
}

func TestInvokeHTTPErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit exceeded","code":429}}`))
	}))
	defer srv.Close()

	res := NewAdapter(testConfig(srv.URL, "key"), zap.NewNop()).Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeError, res.Outcome)
	assert.Contains(t, res.ErrorDetail, "429")
}

func TestInvokeMissingKeySkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	res := NewAdapter(testConfig(srv.URL, ""), zap.NewNop()).Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeError, res.Outcome)
	assert.Equal(t, llm.MissingKeyDetail, res.ErrorDetail)
	assert.Zero(t, hits.Load())
}

func TestInvokeUnreachableIsError(t *testing.T) {
	res := NewAdapter(testConfig("http://127.0.0.1:1", "key"), zap.NewNop()).Invoke(context.Background(), testCall())

	assert.Equal(t, entity.OutcomeError, res.Outcome)
	assert.NotEmpty(t, res.ErrorDetail)
}
