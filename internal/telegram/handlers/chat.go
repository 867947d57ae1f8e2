package handlers

import (
	"context"
	"strings"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ChatHandler forwards free text to the active project
type ChatHandler struct {
	BaseHandler
	actions *Actions
}

// NewChatHandler creates the handler for the CHAT state
func NewChatHandler(actions *Actions) *ChatHandler {
	return &ChatHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateChat,
			messageSender: actions.messageSender,
		},
		actions: actions,
	}
}

// Handle implements Handler
func (h *ChatHandler) Handle(ctx context.Context, msg *Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	session, err := h.actions.states.GetOrCreateSession(ctx, msg.UserID)
	if err != nil {
		return err
	}

	err = h.actions.Exclusive(ctx, msg, func() error {
		resp, err := withTyping(ctx, h.actions, msg.ChatID, func() (*entity.ProjectMessageResponse, error) {
			return h.actions.planner.SendMessage(ctx, session.ProjectID, &entity.ProjectMessageRequest{
				Content:    text,
				Mode:       string(session.Mode),
				ReplyLevel: string(session.Register),
			})
		})
		if err != nil {
			return err
		}

		ctxzap.Debug(ctx, "telegram chat turn",
			zap.String("project_id", session.ProjectID),
			zap.Bool("used_fallback", resp.UsedFallback),
			zap.Bool("has_roadmap", len(resp.Roadmap) > 0),
		)

		h.sendMessage(msg.ChatID, resp.Reply.Content, nil)

		if len(resp.Roadmap) > 0 {
			roadmap, err := render.RenderRoadmap(resp.Roadmap)
			if err != nil {
				return err
			}
			h.sendMessage(msg.ChatID, roadmap, h.actions.keyboard.GenerateKeyboard())
		}

		if resp.UsedFallback {
			h.sendMessage(msg.ChatID, render.MsgFallbackNotice, nil)
		}
		return nil
	})
	if err != nil {
		h.actions.Fail(ctx, msg, err)
	}

	return nil
}
