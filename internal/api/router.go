package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds generation request bodies.
const maxBodyBytes = 1 << 20

// NewRouter builds and returns the Chi router with all routes configured.
// allowedOrigin is sent as Access-Control-Allow-Origin; empty means "*".
func NewRouter(handlers *Handlers, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(CORS(allowedOrigin))

	r.Get("/health", handlers.Health)

	r.Route("/api/quests", func(r chi.Router) {
		r.With(middleware.RequestSize(maxBodyBytes)).Post("/generate", handlers.GenerateQuest)
		r.Get("/demo", handlers.DemoQuests)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
