package project

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
)

type ProjectUsecase interface {
	CreateProject(ctx context.Context, req *entity.CreateProjectRequest) (*entity.Project, error)
	ListProjects(ctx context.Context) (*entity.ListProjectsResponse, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	DeleteProject(ctx context.Context, id string) error
	SendMessage(ctx context.Context, id string, req *entity.ProjectMessageRequest) (*entity.ProjectMessageResponse, error)
	GenerateSummary(ctx context.Context, id string) (string, error)
	GenerateDevGuide(ctx context.Context, id string, req *entity.ProjectDevGuideRequest) (*entity.DevGuidePayload, error)
	ExportSummary(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error)
	ExportDevGuide(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error)
}
