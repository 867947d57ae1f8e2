package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/extract"
	"github.com/MVVYSHNAV/idea-generator/internal/prompt"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	chatTokenCap     = 1000
	chatTemperature  = 0.7
	summaryTokenCap  = 2000
	summaryTemp      = 0.5
	devGuideTokenCap = 3500
	devGuideTemp     = 0.4
)

// ChatReply is the outcome of one chat turn
type ChatReply struct {
	Text string
	// Roadmap is set when the reply embedded a roadmap object
	Roadmap      *entity.Payload
	UsedFallback bool
	Provider     string
	Model        string
}

// PlannerUsecase implements the idea planning operations
type PlannerUsecase struct {
	completer  Completer
	composer   PromptComposer
	projects   ProjectRepository
	formatters FormatterFactory

	// per-project locks serialize read-modify-write of a project document
	locks sync.Map

	now   func() time.Time
	newID func() string
}

// NewUsecase creates a new planner use case
func NewUsecase(
	completer Completer,
	composer PromptComposer,
	projects ProjectRepository,
	formatters FormatterFactory,
) *PlannerUsecase {
	return &PlannerUsecase{
		completer:  completer,
		composer:   composer,
		projects:   projects,
		formatters: formatters,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// CompleteChat answers one chat turn. Provider failures degrade to canned
// text, so errors are returned only for invalid input.
func (uc *PlannerUsecase) CompleteChat(
	ctx context.Context,
	conversation []entity.Message,
	mode entity.ModeTag,
	register entity.RegisterTag,
) (*ChatReply, error) {
	conv, err := cleanConversation(conversation)
	if err != nil {
		return nil, err
	}

	task := entity.TaskChat
	if mode == entity.ModeRoadmap {
		task = entity.TaskRoadmap
	}

	req := entity.NewCompletionRequest(
		uc.composer.Compose(mode, register, task),
		conv, mode, register, task,
		entity.WithTokenCap(chatTokenCap),
		entity.WithTemperature(chatTemperature),
	)

	c := uc.completer.Complete(ctx, req)
	res := extract.Embedded(c.Text)

	ctxzap.Info(ctx, "chat turn completed",
		zap.String("mode", string(mode)),
		zap.String("provider", c.Provider),
		zap.Bool("used_fallback", c.UsedFallback),
		zap.Bool("has_roadmap", res.Payload != nil),
	)

	return &ChatReply{
		Text:         res.ConversationalText,
		Roadmap:      res.Payload,
		UsedFallback: c.UsedFallback,
		Provider:     c.Provider,
		Model:        c.Model,
	}, nil
}

// CompleteSummary writes the markdown project summary
func (uc *PlannerUsecase) CompleteSummary(ctx context.Context, in SummaryInput) (string, error) {
	if strings.TrimSpace(in.Idea) == "" {
		return "", fmt.Errorf("%w: idea", entity.ErrMissingField)
	}

	user := entity.Message{
		Role:    entity.RoleUser,
		Content: "Please generate the final project summary based on this data: " + summaryContext(in),
	}

	req := entity.NewCompletionRequest(
		uc.composer.Compose(entity.ModeBrainstorm, in.Register, entity.TaskSummary),
		[]entity.Message{user}, entity.ModeBrainstorm, in.Register, entity.TaskSummary,
		entity.WithTokenCap(summaryTokenCap),
		entity.WithTemperature(summaryTemp),
	)

	c := uc.completer.Complete(ctx, req)
	if c.UsedFallback {
		ctxzap.Warn(ctx, "summary generation exhausted all providers", zap.String("last_error", c.LastError))
		return "", fmt.Errorf("summary: %w", entity.ErrGenerationFailed)
	}

	ctxzap.Info(ctx, "summary generated", zap.String("provider", c.Provider), zap.String("model", c.Model))

	return strings.TrimSpace(c.Text), nil
}

// CompleteDevGuide writes the step by step development guide
func (uc *PlannerUsecase) CompleteDevGuide(ctx context.Context, in DevGuideInput) (*entity.DevGuidePayload, error) {
	if strings.TrimSpace(in.Idea) == "" {
		return nil, fmt.Errorf("%w: idea", entity.ErrMissingField)
	}

	stack := in.Stack.WithDefaults()
	user := entity.Message{
		Role:    entity.RoleUser,
		Content: "Generate the development guide for this project:\n" + devGuideContext(in),
	}

	req := entity.NewCompletionRequest(
		uc.composer.Compose(entity.ModeBrainstorm, in.Register, entity.TaskDevGuide, prompt.WithStack(stack)),
		[]entity.Message{user}, entity.ModeBrainstorm, in.Register, entity.TaskDevGuide,
		entity.WithTokenCap(devGuideTokenCap),
		entity.WithTemperature(devGuideTemp),
		entity.WithExpectJSON(),
	)

	c := uc.completer.Complete(ctx, req)
	if c.UsedFallback {
		ctxzap.Warn(ctx, "dev guide generation exhausted all providers", zap.String("last_error", c.LastError))
		return nil, fmt.Errorf("dev guide: %w", entity.ErrGenerationFailed)
	}

	res, err := extract.Strict(c.Text, entity.SchemaDevGuide)
	if err != nil {
		var malformed *extract.MalformedPayloadError
		if errors.As(err, &malformed) {
			ctxzap.Warn(ctx, "dev guide reply is malformed",
				zap.String("provider", c.Provider),
				zap.String("reason", malformed.Reason),
			)
		}
		return nil, fmt.Errorf("dev guide: %w", err)
	}

	ctxzap.Info(ctx, "dev guide generated",
		zap.String("provider", c.Provider),
		zap.Int("steps", len(res.Payload.DevGuide.Steps)),
	)

	return res.Payload.DevGuide, nil
}

// cleanConversation drops system turns and rejects unknown roles
func cleanConversation(conversation []entity.Message) ([]entity.Message, error) {
	conv := make([]entity.Message, 0, len(conversation))
	for i, m := range conversation {
		if err := m.Role.Validate(); err != nil {
			return nil, fmt.Errorf("%w: messages[%d]: %v", entity.ErrInvalidParameter, i, err)
		}
		if m.Role == entity.RoleSystem {
			continue
		}
		conv = append(conv, m)
	}

	if len(conv) == 0 {
		return nil, fmt.Errorf("%w: messages", entity.ErrMissingField)
	}

	return conv, nil
}

func rawRoadmap(p *entity.Payload) json.RawMessage {
	if p == nil || p.Schema != entity.SchemaRoadmap {
		return nil
	}
	return p.Raw
}
