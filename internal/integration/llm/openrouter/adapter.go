// Package openrouter is the primary completion provider, an OpenAI compatible aggregator.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/common"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm"
	pkghttp "github.com/MVVYSHNAV/idea-generator/pkg/http"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	Name           = "openrouter"
	DefaultBaseURL = "https://openrouter.ai/api/v1"
)

type Adapter struct {
	client *openai.Client
	hasKey bool
}

func NewAdapter(cfg config.OpenRouterConfig, logger *zap.Logger) *Adapter {
	if cfg.Url == "" {
		cfg.Url = DefaultBaseURL
	}

	// OpenRouter ranks and attributes traffic by these headers
	conn := common.NewBaseConnector(cfg.HTTPClientConfig, logger,
		pkghttp.WithStaticHeaders(map[string]string{
			"HTTP-Referer": cfg.SiteURL,
			"X-Title":      cfg.AppName,
		}),
	)

	clientCfg := openai.DefaultConfig(cfg.Token)
	clientCfg.BaseURL = conn.BaseURL()
	clientCfg.HTTPClient = conn.HTTPClient()

	return &Adapter{
		client: openai.NewClientWithConfig(clientCfg),
		hasKey: cfg.Token != "",
	}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) Invoke(ctx context.Context, call completion.Call) entity.ProviderResult {
	if !a.hasKey {
		return entity.ErrorResult(Name, call.Model, llm.MissingKeyDetail)
	}

	req := openai.ChatCompletionRequest{
		Model:       call.Model,
		Messages:    toMessages(call),
		MaxTokens:   call.MaxOutputTokens,
		Temperature: float32(call.Temperature),
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return entity.ErrorResult(Name, call.Model, describe(err))
	}

	if len(resp.Choices) == 0 {
		return entity.EmptyResult(Name, call.Model, "no choices in response")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return entity.EmptyResult(Name, call.Model, "empty message content")
	}

	return entity.SuccessResult(Name, call.Model, text)
}

func toMessages(call completion.Call) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(call.Conversation)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: call.SystemInstruction,
	})

	for _, m := range call.Conversation {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case entity.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		case entity.RoleSystem:
			role = openai.ChatMessageRoleSystem
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	return msgs
}

func describe(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("HTTP %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}

	return llm.Describe(err)
}
