package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/MVVYSHNAV/idea-generator/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider names accepted in LLM_CHAIN_ORDER
const (
	ProviderOpenRouter  = "openrouter"
	ProviderGemini      = "gemini"
	ProviderHuggingFace = "huggingface"
)

// Store backends accepted in STORE_BACKEND
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR,notEmpty"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3m"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Storage configuration
	StoreBackend        string               `env:"STORE_BACKEND" envDefault:"memory"`
	DatabaseURL         string               `env:"DATABASE_URL"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_RETRY_"`

	// Completion providers
	LLMCfg         LLMConfig         `envPrefix:"LLM_"`
	OpenRouterCfg  OpenRouterConfig  `envPrefix:"OPENROUTER_"`
	GeminiCfg      GeminiConfig      `envPrefix:"GEMINI_"`
	HuggingFaceCfg HuggingFaceConfig `envPrefix:"HUGGINGFACE_"`

	// Canned replies used when every provider fails, empty means built-in
	FallbackBankPath string `env:"FALLBACK_BANK_PATH"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConfig is the provider chain policy
type LLMConfig struct {
	ChainOrder  []string      `env:"CHAIN_ORDER" envSeparator:"," envDefault:"openrouter,gemini,huggingface"`
	CallTimeout time.Duration `env:"CALL_TIMEOUT" envDefault:"60s"`
}

type OpenRouterConfig struct {
	HTTPClientConfig
	Models  []string `env:"MODELS" envSeparator:"," envDefault:"google/gemini-2.0-flash-lite-preview-02-05:free"`
	SiteURL string   `env:"SITE_URL" envDefault:"http://localhost:3000"`
	AppName string   `env:"APP_NAME" envDefault:"Idea Navigator"`
}

type GeminiConfig struct {
	HTTPClientConfig
	Models []string `env:"MODELS" envSeparator:"," envDefault:"gemini-1.5-flash,gemini-pro"`
}

type HuggingFaceConfig struct {
	HTTPClientConfig
	ChatEndpoint   string   `env:"CHAT_ENDPOINT" envDefault:"/v1/chat/completions"`
	ChatModels     []string `env:"CHAT_MODELS" envSeparator:"," envDefault:"Qwen/Qwen2.5-72B-Instruct,meta-llama/Llama-3.3-70B-Instruct,mistralai/Mistral-7B-Instruct-v0.3"`
	DevGuideModels []string `env:"DEV_GUIDE_MODELS" envSeparator:"," envDefault:"THUDM/glm-4-9b-chat,Qwen/Qwen2.5-72B-Instruct,meta-llama/Llama-3.3-70B-Instruct"`
}

// HTTPClientConfig is shared by every outbound provider client.
// Token is the provider API key; an empty token disables the provider.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"90s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads and validates the configuration from the process environment
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	normalize(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	order := make([]string, 0, len(cfg.LLMCfg.ChainOrder))
	for _, name := range cfg.LLMCfg.ChainOrder {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			order = append(order, name)
		}
	}
	cfg.LLMCfg.ChainOrder = order
}

func validateConfig(cfg *Config) error {
	var errors []string

	seen := make(map[string]bool)
	for _, name := range cfg.LLMCfg.ChainOrder {
		switch name {
		case ProviderOpenRouter, ProviderGemini, ProviderHuggingFace:
		default:
			errors = append(errors, fmt.Sprintf("LLM_CHAIN_ORDER contains unknown provider %q", name))
		}
		if seen[name] {
			errors = append(errors, fmt.Sprintf("LLM_CHAIN_ORDER lists %q twice", name))
		}
		seen[name] = true
	}

	if cfg.LLMCfg.CallTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("LLM_CALL_TIMEOUT must be positive, got %s", cfg.LLMCfg.CallTimeout))
	}

	switch cfg.StoreBackend {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when STORE_BACKEND=postgres")
		}
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}
		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	default:
		errors = append(errors, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.StoreBackend))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
