package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/api"
	generateapi "github.com/MVVYSHNAV/idea-generator/internal/api/generate"
	projectapi "github.com/MVVYSHNAV/idea-generator/internal/api/project"
	"github.com/MVVYSHNAV/idea-generator/internal/completion"
	"github.com/MVVYSHNAV/idea-generator/internal/config"
	"github.com/MVVYSHNAV/idea-generator/internal/entity"
	"github.com/MVVYSHNAV/idea-generator/internal/fallback"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/gemini"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/huggingface"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/mock"
	"github.com/MVVYSHNAV/idea-generator/internal/integration/llm/openrouter"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/formatter"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/validator"
	"github.com/MVVYSHNAV/idea-generator/internal/prompt"
	"github.com/MVVYSHNAV/idea-generator/internal/repository"
	"github.com/MVVYSHNAV/idea-generator/internal/telegram"
	"github.com/MVVYSHNAV/idea-generator/internal/usecase/planner"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// core holds what the HTTP server and the bot share
type core struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   repository.Store
	db      *pgxpool.Pool
	chain   *completion.Chain
	planner *planner.PlannerUsecase
}

func (c *core) close() {
	if c.db != nil {
		c.db.Close()
	}
}

func buildCore(ctx context.Context) (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("building application",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.StoreBackend),
	)

	store, db, err := setupStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &core{cfg: cfg, logger: logger, store: store, db: db}

	chain, err := buildChain(ctx, cfg, logger)
	if err != nil {
		c.close()
		return nil, err
	}
	c.chain = chain
	logger.Info("provider chain configured", zap.Strings("providers", chain.Providers()))

	c.planner = planner.NewUsecase(
		chain,
		prompt.NewComposer(),
		repository.NewProjectRepository(store),
		formatter.NewFactory(),
	)
	logger.Info("use cases initialized")

	return c, nil
}

// buildChain wires the provider adapters in the configured priority order
func buildChain(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*completion.Chain, error) {
	bank, err := fallback.Load(cfg.FallbackBankPath)
	if err != nil {
		return nil, fmt.Errorf("load fallback bank: %w", err)
	}

	if cfg.EnableMocks {
		logger.Info("using mock provider")
		return completion.NewChain([]completion.ChainProvider{
			{Adapter: mock.NewAdapter(), Models: []string{"mock"}},
		}, bank, cfg.LLMCfg.CallTimeout)
	}

	providers := make([]completion.ChainProvider, 0, len(cfg.LLMCfg.ChainOrder))
	for _, name := range cfg.LLMCfg.ChainOrder {
		switch name {
		case config.ProviderOpenRouter:
			providers = append(providers, completion.ChainProvider{
				Name:    name,
				Adapter: openrouter.NewAdapter(cfg.OpenRouterCfg, logger),
				Models:  cfg.OpenRouterCfg.Models,
			})
		case config.ProviderGemini:
			adapter, err := gemini.NewAdapter(ctx, cfg.GeminiCfg, logger)
			if err != nil {
				return nil, fmt.Errorf("create gemini adapter: %w", err)
			}
			providers = append(providers, completion.ChainProvider{
				Name:    name,
				Adapter: adapter,
				Models:  cfg.GeminiCfg.Models,
			})
		case config.ProviderHuggingFace:
			providers = append(providers, completion.ChainProvider{
				Name:    name,
				Adapter: huggingface.NewAdapter(cfg.HuggingFaceCfg, logger),
				Models:  cfg.HuggingFaceCfg.ChatModels,
				TaskModels: map[entity.TaskKind][]string{
					entity.TaskDevGuide: cfg.HuggingFaceCfg.DevGuideModels,
				},
			})
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}

	return completion.NewChain(providers, bank, cfg.LLMCfg.CallTimeout)
}

func Build() (*App, error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, err
	}
	cfg, logger := c.cfg, c.logger

	generateHandler := generateapi.NewHandler(c.planner, validator.New())
	projectHandler := projectapi.NewHandler(c.planner, validator.New())
	logger.Info("API handlers initialized")

	router := api.SetupRouter(generateHandler, projectHandler, api.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Providers:      c.chain.Providers(),
	}, logger)
	logger.Info("HTTP router configured")

	// WriteTimeout stays above RequestTimeout so the timeout middleware answers first
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     c.db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	c, err := buildCore(context.Background())
	if err != nil {
		return nil, nil, err
	}

	if c.cfg.TelegramCfg.BotToken == "" {
		c.close()
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the bot")
	}

	bot, err := telegram.NewBot(&c.cfg.TelegramCfg, repository.NewTelegramStateRepository(c.store), c.planner, c.logger)
	if err != nil {
		c.close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, nil
}
