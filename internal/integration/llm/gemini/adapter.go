// Package gemini is the secondary completion provider backed by the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/common"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const Name = "gemini"

type Adapter struct {
	cli *genai.Client
}

// NewAdapter builds the client only when an API key is configured,
// otherwise every call reports a missing key without touching the network.
func NewAdapter(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Adapter, error) {
	if cfg.Token == "" {
		return &Adapter{}, nil
	}

	conn := common.NewBaseConnector(cfg.HTTPClientConfig, logger)

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.Token,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: conn.HTTPClient(),
	}
	if cfg.Url != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Url}
	}

	cli, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Adapter{cli: cli}, nil
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) Invoke(ctx context.Context, call completion.Call) entity.ProviderResult {
	if a.cli == nil {
		return entity.ErrorResult(Name, call.Model, llm.MissingKeyDetail)
	}

	contents := toContents(call.Conversation)
	if len(contents) == 0 {
		return entity.ErrorResult(Name, call.Model, "conversation is empty")
	}

	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(call.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(call.Temperature)),
		MaxOutputTokens:   int32(call.MaxOutputTokens),
	}

	resp, err := a.cli.Models.GenerateContent(ctx, call.Model, contents, genCfg)
	if err != nil {
		return entity.ErrorResult(Name, call.Model, llm.Describe(err))
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return entity.EmptyResult(Name, call.Model, "no candidates in response")
	}

	text := candidateText(resp.Candidates[0])
	if strings.TrimSpace(text) == "" {
		return entity.EmptyResult(Name, call.Model, "empty candidate content")
	}

	return entity.SuccessResult(Name, call.Model, text)
}

// toContents maps the conversation to Gemini turns. System messages carry no
// Gemini role, they are sent as user turns.
func toContents(conv []entity.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(conv))
	for _, m := range conv {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if m.Role == entity.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}

func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
