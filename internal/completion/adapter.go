// Package completion runs completion requests across the configured
// providers and their candidate models.
package completion

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

// Call is one attempt against one provider and one model
type Call struct {
	SystemInstruction string
	Conversation      []entity.Message
	Model             string
	MaxOutputTokens   int
	Temperature       float64
}

// Adapter talks to a single text generation service.
// Invoke must convert every failure into a result, it never returns an error.
type Adapter interface {
	Name() string
	Invoke(ctx context.Context, call Call) entity.ProviderResult
}

// FallbackBank supplies canned text once every provider failed
type FallbackBank interface {
	Get(mode entity.ModeTag) string
}

func callFromRequest(req entity.CompletionRequest) Call {
	return Call{
		SystemInstruction: req.SystemInstruction,
		Conversation:      req.Conversation,
		MaxOutputTokens:   req.MaxOutputTokens,
		Temperature:       req.Temperature,
	}
}
