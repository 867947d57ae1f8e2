package handlers

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the handlers talk to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// PlannerUsecase defines the project operations the bot drives
type PlannerUsecase interface {
	CreateProject(ctx context.Context, req *entity.CreateProjectRequest) (*entity.Project, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	SendMessage(ctx context.Context, id string, req *entity.ProjectMessageRequest) (*entity.ProjectMessageResponse, error)
	GenerateSummary(ctx context.Context, id string) (string, error)
	GenerateDevGuide(ctx context.Context, id string, req *entity.ProjectDevGuideRequest) (*entity.DevGuidePayload, error)
	ExportSummary(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error)
	ExportDevGuide(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error)
}
