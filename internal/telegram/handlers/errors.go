package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrNoActiveProject is returned when a project action runs before the
// user has sent an idea
var ErrNoActiveProject = errors.New("no active project")

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

func warning(err error, user, log string) *HandlerError {
	return &HandlerError{Err: err, UserMessage: user, LogMessage: log, Severity: SeverityWarning}
}

// classifyHandlerError maps an error to what the user sees and how loud the log is
func classifyHandlerError(err error) *HandlerError {
	switch {
	case errors.Is(err, ErrNoActiveProject):
		return warning(err, render.ErrNoProject, "no active project")
	case errors.Is(err, entity.ErrProjectNotFound):
		return warning(err, render.ErrProjectNotFound, "project not found")
	case errors.Is(err, entity.ErrNoSummary):
		return warning(err, render.ErrNoSummary, "summary not generated")
	case errors.Is(err, entity.ErrNoDevGuide):
		return warning(err, render.ErrNoDevGuide, "dev guide not generated")
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		return warning(err, render.ErrInvalidInput, "invalid input")
	case errors.Is(err, entity.ErrGenerationFailed):
		return warning(err, render.ErrGenerationFailed, "generation failed")
	case errors.Is(err, entity.ErrInvalidFormat):
		return &HandlerError{Err: err, UserMessage: render.ErrInvalidOutput, LogMessage: "malformed model output", Severity: SeverityError}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &HandlerError{Err: err, UserMessage: render.ErrTimeout, LogMessage: "operation timed out", Severity: SeverityError}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &HandlerError{Err: err, UserMessage: render.ErrTimeout, LogMessage: "network timeout", Severity: SeverityError}
		}
		return &HandlerError{Err: err, UserMessage: render.ErrNetworkIssue, LogMessage: "network error", Severity: SeverityError}
	}

	return &HandlerError{Err: err, UserMessage: render.ErrGeneric, LogMessage: "handler error", Severity: SeverityError}
}

// HandleError provides centralized error handling for all handlers
// It logs the error with appropriate severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	fields := []zap.Field{zap.Error(handlerErr.Err), zap.Int64("chat_id", chatID)}
	if handlerErr.Severity == SeverityWarning {
		ctxzap.Warn(ctx, handlerErr.LogMessage, fields...)
	} else {
		ctxzap.Error(ctx, handlerErr.LogMessage, fields...)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}
