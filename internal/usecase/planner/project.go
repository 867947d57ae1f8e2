package planner

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const greetingTemplate = "Hey! I just read your vision:\n\n\"%s\"\n\n" +
	"I'm ready to dive in as your co-founder. I've started in **Brainstorm Mode** to explore the possibilities, " +
	"but feel free to switch to **MVP Planning** or **Risk Analysis** whenever you're ready to get more tactical. " +
	"What's the main goal you have for this idea right now?"

const (
	summaryTitle  = "Project Summary"
	devGuideTitle = "Development Guide"
)

func (uc *PlannerUsecase) lock(id string) func() {
	m, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateProject starts a project from an idea and seeds the greeting
func (uc *PlannerUsecase) CreateProject(ctx context.Context, req *entity.CreateProjectRequest) (*entity.Project, error) {
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		return nil, fmt.Errorf("%w: idea", entity.ErrMissingField)
	}

	now := uc.now()
	project := &entity.Project{
		ID:         uc.newID(),
		Title:      entity.ProjectTitle(idea),
		Idea:       idea,
		ReplyLevel: entity.ParseRegisterOr(req.ReplyLevel, entity.RegisterTech),
		Mode:       entity.ModeBrainstorm,
		Messages: []entity.Message{
			{Role: entity.RoleAssistant, Content: fmt.Sprintf(greetingTemplate, idea)},
		},
		Memory:    entity.Memory{Decisions: []string{}, Assumptions: []string{}, Scope: []string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	ctxzap.Info(ctx, "project created", zap.String("project_id", project.ID))

	return project, nil
}

func (uc *PlannerUsecase) ListProjects(ctx context.Context) (*entity.ListProjectsResponse, error) {
	projects, err := uc.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	resp := &entity.ListProjectsResponse{Projects: make([]*entity.ProjectSummary, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, &entity.ProjectSummary{
			ID:         p.ID,
			Title:      p.Title,
			ReplyLevel: p.ReplyLevel,
			HasRoadmap: len(p.Roadmap) > 0,
			UpdatedAt:  p.UpdatedAt,
		})
	}

	return resp, nil
}

func (uc *PlannerUsecase) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	return uc.projects.Get(ctx, id)
}

func (uc *PlannerUsecase) DeleteProject(ctx context.Context, id string) error {
	unlock := uc.lock(id)
	defer unlock()

	if err := uc.projects.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "project deleted", zap.String("project_id", id))
	return nil
}

// SendMessage runs one chat turn inside a stored project and persists both
// turns, any roadmap the reply carried and memory it stated.
func (uc *PlannerUsecase) SendMessage(
	ctx context.Context,
	id string,
	req *entity.ProjectMessageRequest,
) (*entity.ProjectMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content", entity.ErrMissingField)
	}

	unlock := uc.lock(id)
	defer unlock()

	project, err := uc.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Mode != "" {
		project.Mode = entity.ParseMode(req.Mode)
	}
	if req.ReplyLevel != "" {
		project.ReplyLevel = entity.ParseRegister(req.ReplyLevel)
	}

	conversation := append(project.Messages, entity.Message{Role: entity.RoleUser, Content: content})

	reply, err := uc.CompleteChat(ctx, conversation, project.Mode, project.ReplyLevel)
	if err != nil {
		return nil, err
	}

	assistant := entity.Message{Role: entity.RoleAssistant, Content: reply.Text}
	project.Messages = append(conversation, assistant)
	project.Memory = ObserveMemory(project.Memory, reply.Text)
	if raw := rawRoadmap(reply.Roadmap); raw != nil {
		project.Roadmap = raw
	}
	project.UpdatedAt = uc.now()

	if err := uc.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	return &entity.ProjectMessageResponse{
		Reply:        assistant,
		Roadmap:      rawRoadmap(reply.Roadmap),
		UsedFallback: reply.UsedFallback,
		Project:      project,
	}, nil
}

// GenerateSummary writes and stores the project summary
func (uc *PlannerUsecase) GenerateSummary(ctx context.Context, id string) (string, error) {
	unlock := uc.lock(id)
	defer unlock()

	project, err := uc.projects.Get(ctx, id)
	if err != nil {
		return "", err
	}

	summary, err := uc.CompleteSummary(ctx, SummaryInput{
		Idea:     project.Idea,
		Memory:   project.Memory,
		Roadmap:  project.Roadmap,
		Register: project.ReplyLevel,
	})
	if err != nil {
		return "", err
	}

	project.Summary = summary
	project.UpdatedAt = uc.now()
	if err := uc.projects.Save(ctx, project); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}

	return summary, nil
}

// GenerateDevGuide writes and stores the dev guide for the chosen stack.
// The guide register defaults to tech.
func (uc *PlannerUsecase) GenerateDevGuide(
	ctx context.Context,
	id string,
	req *entity.ProjectDevGuideRequest,
) (*entity.DevGuidePayload, error) {
	unlock := uc.lock(id)
	defer unlock()

	project, err := uc.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stack := entity.StackChoice{
		Framework:   req.Framework,
		Language:    req.Language,
		BackendTech: req.BackendTech,
	}.WithDefaults()

	guide, err := uc.CompleteDevGuide(ctx, DevGuideInput{
		Idea:     project.Idea,
		Summary:  project.Summary,
		Memory:   project.Memory,
		Roadmap:  project.Roadmap,
		Stack:    stack,
		Register: entity.ParseRegisterOr(string(project.ReplyLevel), entity.RegisterTech),
	})
	if err != nil {
		return nil, err
	}

	project.DevGuide = guide
	project.Stack = &stack
	project.UpdatedAt = uc.now()
	if err := uc.projects.Save(ctx, project); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}

	return guide, nil
}

// ExportSummary renders the stored summary in the requested format
func (uc *PlannerUsecase) ExportSummary(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error) {
	project, err := uc.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(project.Summary) == "" {
		return nil, entity.ErrNoSummary
	}

	return uc.export(formatter.Document{Title: summaryTitle, Body: project.Summary}, "summary", project, format)
}

// ExportDevGuide renders the stored dev guide in the requested format
func (uc *PlannerUsecase) ExportDevGuide(ctx context.Context, id string, format entity.ResultFormat) (*entity.ExportFile, error) {
	project, err := uc.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.DevGuide == nil {
		return nil, entity.ErrNoDevGuide
	}

	doc := formatter.Document{Title: devGuideTitle, Body: formatter.DevGuideMarkdown(project.DevGuide)}
	return uc.export(doc, "dev-guide", project, format)
}

func (uc *PlannerUsecase) export(doc formatter.Document, kind string, project *entity.Project, format entity.ResultFormat) (*entity.ExportFile, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	content, err := f.Format(doc)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", kind, err)
	}

	return &entity.ExportFile{
		Filename:    fmt.Sprintf("%s-%s%s", kind, project.ID, f.FileExtension()),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}
