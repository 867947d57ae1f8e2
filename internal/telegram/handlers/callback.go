package handlers

import (
	"context"
	"fmt"

	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/keyboard"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline keyboard button clicks
type CallbackHandler struct {
	BaseHandler
	actions *Actions
}

func NewCallbackHandler(actions *Actions) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: actions.messageSender,
		},
		actions: actions,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", msg.CallbackData),
		)
		h.messageSender.AnswerCallback(msg.CallbackID, render.ErrInvalidCallback)
		return nil
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", msg.UserID),
	)

	// Answer right away so the client stops the spinner before slow work starts
	h.messageSender.AnswerCallback(msg.CallbackID, render.MsgCallbackAccepted)

	switch data.Action {
	case keyboard.ActionMode:
		mode := entity.ModeTag(data.Value)
		if !mode.IsKnown() {
			err = fmt.Errorf("%w: mode %q", entity.ErrInvalidParameter, data.Value)
			break
		}
		err = h.actions.SetMode(ctx, msg, mode)
	case keyboard.ActionLevel:
		err = h.actions.SetLevel(ctx, msg, entity.ParseRegister(data.Value))
	case keyboard.ActionGenerate:
		err = h.generate(ctx, msg, data.Value)
	case keyboard.ActionExport:
		kind, format := data.Split()
		err = h.actions.Export(ctx, msg, kind, entity.ResultFormat(format))
	default:
		err = fmt.Errorf("%w: callback action %q", entity.ErrInvalidParameter, data.Action)
	}

	if err != nil {
		h.actions.Fail(ctx, msg, err)
	}
	return nil
}

func (h *CallbackHandler) generate(ctx context.Context, msg *Message, kind string) error {
	switch kind {
	case keyboard.KindSummary:
		return h.actions.Summary(ctx, msg)
	case keyboard.KindDevGuide:
		return h.actions.DevGuide(ctx, msg, "")
	default:
		return fmt.Errorf("%w: document %q", entity.ErrInvalidParameter, kind)
	}
}
