package project

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/logger"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/response"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ProjectUsecase
	validator *validator.Validator
}

func NewHandler(usecase ProjectUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateProject")

	var req entity.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateCreateProject(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	proj, err := h.usecase.CreateProject(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, proj)
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListProjects")

	resp, err := h.usecase.ListProjects(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "projects listed", zap.Int("count", len(resp.Projects)))
	response.Success(w, resp)
}

// GetProject handles GET /projects/{project_id}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "GetProject")

	proj, err := h.usecase.GetProject(ctx, chi.URLParam(r, "project_id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, proj)
}

// DeleteProject handles DELETE /projects/{project_id}
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "DeleteProject")

	if err := h.usecase.DeleteProject(ctx, chi.URLParam(r, "project_id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteProjectResponse{Status: "deleted"})
}

// SendMessage handles POST /projects/{project_id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "SendMessage")

	var req entity.ProjectMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateProjectMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	resp, err := h.usecase.SendMessage(ctx, chi.URLParam(r, "project_id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// GenerateSummary handles POST /projects/{project_id}/summary
func (h *Handler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "GenerateSummary")

	summary, err := h.usecase.GenerateSummary(ctx, chi.URLParam(r, "project_id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.ProjectSummaryResponse{Summary: summary})
}

// GetSummary handles GET /projects/{project_id}/summary?format=markdown|pdf|docx
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "GetSummary")

	file, err := h.usecase.ExportSummary(ctx, chi.URLParam(r, "project_id"), formatParam(r))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, file)
}

// GenerateDevGuide handles POST /projects/{project_id}/dev-guide
func (h *Handler) GenerateDevGuide(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "GenerateDevGuide")

	var req entity.ProjectDevGuideRequest
	// an empty body selects the default stack
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateProjectDevGuide(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	guide, err := h.usecase.GenerateDevGuide(ctx, chi.URLParam(r, "project_id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DevGuideResponse{Guide: guide})
}

// GetDevGuide handles GET /projects/{project_id}/dev-guide?format=markdown|pdf|docx
func (h *Handler) GetDevGuide(w http.ResponseWriter, r *http.Request) {
	ctx := h.projectContext(r, "GetDevGuide")

	file, err := h.usecase.ExportDevGuide(ctx, chi.URLParam(r, "project_id"), formatParam(r))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *Handler) projectContext(r *http.Request, action string) context.Context {
	return logger.AddFields(r.Context(),
		zap.String("project_id", chi.URLParam(r, "project_id")),
		zap.String("action", action),
	)
}

func formatParam(r *http.Request) entity.ResultFormat {
	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		return entity.FormatMarkdown
	}
	return format
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrProjectNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrNoSummary) || errors.Is(err, entity.ErrNoDevGuide):
		h.respondError(ctx, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrGenerationFailed):
		h.respondError(ctx, w, http.StatusServiceUnavailable, entity.ErrGenerationFailed.Error(), err)
	case errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadGateway, "model returned a malformed payload", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
