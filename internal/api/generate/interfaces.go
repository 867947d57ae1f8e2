package generate

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/usecase/planner"
)

type PlannerUsecase interface {
	CompleteChat(ctx context.Context, conversation []entity.Message, mode entity.ModeTag, register entity.RegisterTag) (*planner.ChatReply, error)
	CompleteSummary(ctx context.Context, in planner.SummaryInput) (string, error)
	CompleteDevGuide(ctx context.Context, in planner.DevGuideInput) (*entity.DevGuidePayload, error)
}
