package planner

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/MVVYSHNAV/idea-generator/internal/prompt"
)

// Completer resolves a completion request to text; it never fails
type Completer interface {
	Complete(ctx context.Context, req entity.CompletionRequest) completion.Completion
}

type PromptComposer interface {
	Compose(mode entity.ModeTag, register entity.RegisterTag, task entity.TaskKind, opts ...prompt.Option) string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	Get(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	Save(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
