package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sequencer tries candidate models of one provider in declared order
type Sequencer struct {
	callTimeout time.Duration
}

// NewSequencer returns a sequencer bounding every attempt by callTimeout.
// Zero timeout leaves the deadline to the caller's context.
func NewSequencer(callTimeout time.Duration) *Sequencer {
	return &Sequencer{callTimeout: callTimeout}
}

// Run returns the first acceptable result. When every model fails the last
// observed result is returned with its detail, never as a success.
func (s *Sequencer) Run(ctx context.Context, adapter Adapter, call Call, models []string, expectJSON bool) entity.ProviderResult {
	if len(models) == 0 {
		return entity.ErrorResult(adapter.Name(), "", "no models configured")
	}

	attempt := func(ctx context.Context, model string) entity.ProviderResult {
		c := call
		c.Model = model
		return s.invoke(ctx, adapter, c)
	}
	accept := func(r entity.ProviderResult) bool {
		return acceptable(r, expectJSON)
	}

	last, _, ok := tryInOrder(ctx, models, attempt, accept)
	if ok {
		return last
	}
	if last.Outcome == entity.OutcomeSuccess {
		// non-blank text that failed the JSON shape check
		last = entity.EmptyResult(last.Provider, last.Model, "reply is not a JSON object")
	}
	return last
}

func (s *Sequencer) invoke(ctx context.Context, adapter Adapter, call Call) (res entity.ProviderResult) {
	name := adapter.Name()
	if err := ctx.Err(); err != nil {
		return entity.ErrorResult(name, call.Model, err.Error())
	}

	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res = entity.ErrorResult(name, call.Model, fmt.Sprintf("adapter panic: %v", rec))
		}
		logAttempt(ctx, res, time.Since(start))
	}()

	res = adapter.Invoke(ctx, call)
	if res.Provider == "" {
		res.Provider = name
	}
	if res.Model == "" {
		res.Model = call.Model
	}
	if res.Outcome == entity.OutcomeSuccess && strings.TrimSpace(res.Text) == "" {
		res = entity.EmptyResult(res.Provider, res.Model, "blank completion text")
	}
	return res
}

func logAttempt(ctx context.Context, res entity.ProviderResult, latency time.Duration) {
	fields := []zap.Field{
		zap.String("provider", res.Provider),
		zap.String("model", res.Model),
		zap.String("outcome", string(res.Outcome)),
		zap.Duration("latency", latency),
	}

	switch res.Outcome {
	case entity.OutcomeSuccess:
		ctxzap.Info(ctx, "provider attempt succeeded", fields...)
	case entity.OutcomeEmpty:
		ctxzap.Warn(ctx, "provider returned no completion", append(fields, zap.String("detail", res.ErrorDetail))...)
	default:
		ctxzap.Warn(ctx, "provider attempt failed", append(fields, zap.String("error", res.ErrorDetail))...)
	}
}

func acceptable(r entity.ProviderResult, expectJSON bool) bool {
	if !r.OK() {
		return false
	}
	return !expectJSON || holdsObject(r.Text)
}

// holdsObject reports whether text has a '{' with a later '}', the span the
// strict extractor decodes. Prose around it is allowed.
func holdsObject(text string) bool {
	start := strings.Index(text, "{")
	return start >= 0 && strings.LastIndex(text, "}") > start
}

// tryInOrder calls attempt for each item until accept returns true.
// It returns the last result, how many items were tried and whether one was accepted.
func tryInOrder[T any](
	ctx context.Context,
	items []T,
	attempt func(context.Context, T) entity.ProviderResult,
	accept func(entity.ProviderResult) bool,
) (entity.ProviderResult, int, bool) {
	var last entity.ProviderResult
	for i, item := range items {
		last = attempt(ctx, item)
		if accept(last) {
			return last, i + 1, true
		}
	}
	return last, len(items), false
}
