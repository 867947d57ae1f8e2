package handlers

import (
	"context"

	"github.com/MVVYSHNAV/idea-generator/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot commands
const (
	CommandStart   = "start"
	CommandHelp    = "help"
	CommandNew     = "new"
	CommandMode    = "mode"
	CommandLevel   = "level"
	CommandRoadmap = "roadmap"
	CommandSummary = "summary"
	CommandGuide   = "guide"
)

// CommandHandler handles slash commands in any state
type CommandHandler struct {
	BaseHandler
	actions *Actions
}

func NewCommandHandler(actions *Actions) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCommand,
			messageSender: actions.messageSender,
		},
		actions: actions,
	}
}

// Handle implements Handler
func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	ctxzap.Info(ctx, "command received",
		zap.String("command", msg.Command),
		zap.Int64("user_id", msg.UserID),
	)

	var err error
	switch msg.Command {
	case CommandStart:
		h.sendMessage(msg.ChatID, render.MsgWelcome, nil)
		err = h.actions.NewProject(ctx, msg)
	case CommandNew:
		err = h.actions.NewProject(ctx, msg)
	case CommandHelp:
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
	case CommandMode:
		err = h.actions.ShowModes(ctx, msg)
	case CommandLevel:
		err = h.actions.ShowLevels(ctx, msg)
	case CommandRoadmap:
		err = h.actions.ShowRoadmap(ctx, msg)
	case CommandSummary:
		err = h.actions.Summary(ctx, msg)
	case CommandGuide:
		err = h.actions.DevGuide(ctx, msg, msg.Text)
	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownCommand, nil)
	}

	if err != nil {
		h.actions.Fail(ctx, msg, err)
	}
	return nil
}
