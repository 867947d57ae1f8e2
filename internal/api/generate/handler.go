package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/logger"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/response"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   PlannerUsecase
	validator *validator.Validator
}

func NewHandler(usecase PlannerUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	mode := entity.ParseMode(req.SelectedMode)
	register := entity.ParseRegister(req.ReplyMode)

	ctxzap.Debug(ctx, "completing chat turn",
		zap.String("mode", string(mode)),
		zap.String("register", string(register)),
		zap.Int("messages", len(req.Messages)),
	)

	reply, err := h.usecase.CompleteChat(ctx, req.Messages, mode, register)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toChatResponse(reply))
}

// Summary handles POST /api/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Summary")

	var req entity.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSummary(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	summary, err := h.usecase.CompleteSummary(ctx, toSummaryInput(&req))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.SummaryResponse{Summary: summary})
}

// DevGuide handles POST /api/dev-guide
func (h *Handler) DevGuide(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DevGuide")

	var req entity.DevGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateDevGuide(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	guide, err := h.usecase.CompleteDevGuide(ctx, toDevGuideInput(&req))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DevGuideResponse{Guide: guide})
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
