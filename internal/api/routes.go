package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Register mounts the page, JSON and (when enabled) test-mode routes on r.
// r is expected to already carry the session middleware.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.HandleIndex)
	r.Post("/generate", s.HandleGeneratePage)
	r.Get("/history", s.HandleHistoryPage)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
		r.Post("/generate", s.HandleGenerate)
		r.Get("/history", s.HandleHistory)
	})

	if s.cfg.TestMode {
		r.Post("/test/generate", s.HandleTestGenerate)
		r.Post("/test/rating", s.HandleTestRating)
	}
}
