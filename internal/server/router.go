package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recallhq/recall/internal/api"
	"github.com/recallhq/recall/internal/api/handlers"
	"github.com/recallhq/recall/internal/api/middleware"
)

type RouterConfig struct {
	KnowledgeHandler *handlers.KnowledgeHandler
	MemoryHandler    *handlers.MemoryHandler
	WebSearchHandler *handlers.WebSearchHandler
	ExtractHandler   *handlers.ExtractHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/knowledge", func(r chi.Router) {
		r.Post("/", cfg.KnowledgeHandler.Add)
		r.Get("/", cfg.KnowledgeHandler.List)
		r.Post("/search", cfg.KnowledgeHandler.Search)
		r.Post("/update", cfg.KnowledgeHandler.Update)
		r.Delete("/{item_id}", cfg.KnowledgeHandler.Delete)
	})

	r.Route("/memories", func(r chi.Router) {
		r.Post("/", cfg.MemoryHandler.Store)
		r.Get("/", cfg.MemoryHandler.List)
	})

	r.Post("/search", cfg.WebSearchHandler.Search)
	r.Post("/extract", cfg.ExtractHandler.Extract)

	return r
}
