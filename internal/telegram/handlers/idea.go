package handlers

import (
	"context"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// IdeaHandler turns the first message of a user without a project into one
type IdeaHandler struct {
	BaseHandler
	actions *Actions
}

// NewIdeaHandler creates the handler for the AWAIT_IDEA state
func NewIdeaHandler(actions *Actions) *IdeaHandler {
	return &IdeaHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAwaitIdea,
			messageSender: actions.messageSender,
		},
		actions: actions,
	}
}

// Handle implements Handler
func (h *IdeaHandler) Handle(ctx context.Context, msg *Message) error {
	idea := strings.TrimSpace(msg.Text)
	if idea == "" {
		h.sendMessage(msg.ChatID, render.MsgAskIdea, nil)
		return nil
	}

	session, err := h.actions.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	project, err := h.actions.planner.CreateProject(ctx, &entity.CreateProjectRequest{
		Idea:       idea,
		ReplyLevel: string(session.Register),
	})
	if err != nil {
		h.actions.Fail(ctx, msg, err)
		return nil
	}

	session.ProjectID = project.ID
	session.Mode = project.Mode
	if err := h.actions.states.SetSession(ctx, session); err != nil {
		return err
	}

	ctxzap.Info(ctx, "telegram project started",
		zap.Int64("user_id", msg.UserID),
		zap.String("project_id", project.ID),
	)

	greeting := ""
	if len(project.Messages) > 0 {
		greeting = project.Messages[0].Content
	}
	h.sendMessage(msg.ChatID, greeting, h.actions.keyboard.ModeKeyboard(project.Mode))
	return nil
}
