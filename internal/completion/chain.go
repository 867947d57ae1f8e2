package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChainProvider is one entry of the provider priority list
type ChainProvider struct {
	Name    string
	Adapter Adapter
	Models  []string
	// TaskModels overrides Models for specific tasks
	TaskModels map[entity.TaskKind][]string
}

func (p ChainProvider) modelsFor(task entity.TaskKind) []string {
	if models, ok := p.TaskModels[task]; ok && len(models) > 0 {
		return models
	}
	return p.Models
}

// Completion is what the chain hands back to callers
type Completion struct {
	Text         string
	UsedFallback bool
	Provider     string
	Model        string
	// Attempts is the number of providers tried
	Attempts int
	// LastError holds the detail of the final failed attempt when UsedFallback is set
	LastError string
}

// Chain tries providers in fixed priority order and falls back to the bank
type Chain struct {
	providers []ChainProvider
	bank      FallbackBank
	sequencer *Sequencer
}

func NewChain(providers []ChainProvider, bank FallbackBank, callTimeout time.Duration) (*Chain, error) {
	if bank == nil {
		return nil, errors.New("fallback bank is required")
	}

	list := make([]ChainProvider, 0, len(providers))
	for i, p := range providers {
		if p.Adapter == nil {
			return nil, fmt.Errorf("provider %d (%s): adapter is nil", i, p.Name)
		}
		if p.Name == "" {
			p.Name = p.Adapter.Name()
		}
		p.Models = append([]string(nil), p.Models...)
		if p.TaskModels != nil {
			tasks := make(map[entity.TaskKind][]string, len(p.TaskModels))
			for task, models := range p.TaskModels {
				tasks[task] = append([]string(nil), models...)
			}
			p.TaskModels = tasks
		}
		list = append(list, p)
	}

	return &Chain{
		providers: list,
		bank:      bank,
		sequencer: NewSequencer(callTimeout),
	}, nil
}

// Providers returns the provider names in priority order
func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name
	}
	return names
}

// Complete always yields text. Provider failures never surface as errors:
// once every provider failed the canned text for the request mode is returned.
func (c *Chain) Complete(ctx context.Context, req entity.CompletionRequest) Completion {
	ctx = logger.WithTask(ctx, string(req.Task), string(req.Mode))
	call := callFromRequest(req)

	attempt := func(ctx context.Context, p ChainProvider) entity.ProviderResult {
		res := c.sequencer.Run(ctx, p.Adapter, call, p.modelsFor(req.Task), req.ExpectJSON)
		if res.Provider == "" {
			res.Provider = p.Name
		}
		return res
	}
	accept := func(r entity.ProviderResult) bool {
		return acceptable(r, req.ExpectJSON)
	}

	res, attempts, ok := tryInOrder(ctx, c.providers, attempt, accept)
	if ok {
		return Completion{
			Text:     res.Text,
			Provider: res.Provider,
			Model:    res.Model,
			Attempts: attempts,
		}
	}

	ctxzap.Warn(ctx, "all providers failed, using static fallback",
		zap.Int("attempts", attempts),
		zap.String("last_error", res.ErrorDetail),
	)

	return Completion{
		Text:         c.bank.Get(req.Mode),
		UsedFallback: true,
		Attempts:     attempts,
		LastError:    res.ErrorDetail,
	}
}
