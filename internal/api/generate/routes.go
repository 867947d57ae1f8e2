package generate

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the stateless generation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.Chat)
		r.Post("/summary", h.Summary)
		r.Post("/dev-guide", h.DevGuide)
	})
}
