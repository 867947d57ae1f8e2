// Package huggingface is the tertiary completion provider. The router exposes
// many open models behind an OpenAI compatible chat completions endpoint.
package huggingface

import (
	"context"
	"net/http"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/common"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm"
	pkghttp "github.com/MVVYSHNAV/idea-generator/pkg/http"
	"go.uber.org/zap"
)

const (
	Name           = "huggingface"
	DefaultBaseURL = "https://router.huggingface.co"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type Adapter struct {
	connector *pkghttp.Connector
	endpoint  string
	hasKey    bool
}

func NewAdapter(cfg config.HuggingFaceConfig, logger *zap.Logger) *Adapter {
	if cfg.Url == "" {
		cfg.Url = DefaultBaseURL
	}

	return &Adapter{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAuthToken(cfg.Token)),
		endpoint:  cfg.ChatEndpoint,
		hasKey:    cfg.Token != "",
	}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) Invoke(ctx context.Context, call completion.Call) entity.ProviderResult {
	if !a.hasKey {
		return entity.ErrorResult(Name, call.Model, llm.MissingKeyDetail)
	}

	req := chatRequest{
		Model:       call.Model,
		Messages:    toMessages(call),
		MaxTokens:   call.MaxOutputTokens,
		Temperature: call.Temperature,
	}

	var resp chatResponse
	if err := a.connector.DoRequest(ctx, http.MethodPost, a.endpoint, req, &resp); err != nil {
		return entity.ErrorResult(Name, call.Model, llm.Describe(err))
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

func toMessages(call completion.Call) []chatMessage {
	msgs := make([]chatMessage, 0, len(call.Conversation)+1)
	msgs = append(msgs, chatMessage{Role: string(entity.RoleSystem), Content: call.SystemInstruction})
	for _, m := range call.Conversation {
		msgs = append(msgs, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	return msgs
}
