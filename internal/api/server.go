package api

import (
	"net/http"
	"time"

	"github.com/MVVYSHNAV/idea-generator/internal/api/docs"
	generateapi "github.com/MVVYSHNAV/idea-generator/internal/api/generate"
	"github.com/MVVYSHNAV/idea-generator/internal/api/middleware"
	projectapi "github.com/MVVYSHNAV/idea-generator/internal/api/project"
	"github.com/MVVYSHNAV/idea-generator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// RouterConfig carries the HTTP surface settings
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// Providers is the configured chain order, reported by /health
	Providers []string
}

type healthResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	generateHandler *generateapi.Handler,
	projectHandler *projectapi.Handler,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, healthResponse{Status: "healthy", Providers: cfg.Providers})
	})

	docs.RegisterRoutes(r)

	generateapi.RegisterRoutes(r, generateHandler)
	projectapi.RegisterRoutes(r, projectHandler)

	// CORS wraps the router so pre-flight requests never reach the routes
	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler(r)
}
