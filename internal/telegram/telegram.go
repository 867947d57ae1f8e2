package telegram

import (
	"context"
	"fmt"

	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/bot"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/handlers"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	planner handlers.PlannerUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	RegisterHandlers(b, planner, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// RegisterHandlers registers all handlers with the bot
func RegisterHandlers(b *bot.Bot, planner handlers.PlannerUsecase, logger *zap.Logger) {
	actions := handlers.NewActions(b.GetAPI(), b.GetStateManager(), planner, b.GetKeyboard(), logger)

	b.RegisterHandler(handlers.NewCommandHandler(actions))
	b.RegisterHandler(handlers.NewCallbackHandler(actions))
	b.RegisterHandler(handlers.NewIdeaHandler(actions))
	b.RegisterHandler(handlers.NewChatHandler(actions))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 4),
	)
}
