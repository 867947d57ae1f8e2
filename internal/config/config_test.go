package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("LOG_LEVEL", "debug")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{ProviderOpenRouter, ProviderGemini, ProviderHuggingFace}, cfg.LLMCfg.ChainOrder)
	assert.Equal(t, 60*time.Second, cfg.LLMCfg.CallTimeout)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-pro"}, cfg.GeminiCfg.Models)
	assert.Equal(t, "THUDM/glm-4-9b-chat", cfg.HuggingFaceCfg.DevGuideModels[0])
	assert.Len(t, cfg.HuggingFaceCfg.ChatModels, 3)
	assert.Equal(t, []string{"google/gemini-2.0-flash-lite-preview-02-05:free"}, cfg.OpenRouterCfg.Models)
	assert.Equal(t, uint(5), cfg.DBConnectRetry.Attempts)
	assert.Empty(t, cfg.OpenRouterCfg.Token)
}

func TestParseProviderSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("LLM_CHAIN_ORDER", " HuggingFace , openrouter ")
	t.Setenv("OPENROUTER_TOKEN", "sk-or")
	t.Setenv("OPENROUTER_SERVICE_URL", "http://localhost:9999/api/v1")
	t.Setenv("GEMINI_TIMEOUT", "5s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{ProviderHuggingFace, ProviderOpenRouter}, cfg.LLMCfg.ChainOrder)
	assert.Equal(t, "sk-or", cfg.OpenRouterCfg.Token)
	assert.Equal(t, "http://localhost:9999/api/v1", cfg.OpenRouterCfg.Url)
	assert.Equal(t, 5*time.Second, cfg.GeminiCfg.RequestTimeout)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"LLM_CHAIN_ORDER": "openrouter,claude"}},
		{name: "duplicate provider", env: map[string]string{"LLM_CHAIN_ORDER": "gemini,gemini"}},
		{name: "unknown store", env: map[string]string{"STORE_BACKEND": "redis"}},
		{name: "postgres without url", env: map[string]string{"STORE_BACKEND": "postgres"}},
		{name: "rate limit", env: map[string]string{"TELEGRAM_RATE_LIMIT_PER_MINUTE": "0"}},
		{name: "zero call timeout", env: map[string]string{"LLM_CALL_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseRequiresServerAddr(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("LOG_LEVEL", "info")

	_, err := Parse()
	assert.Error(t, err)
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
