package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notebook-ai/internal/handlers"
	"notebook-ai/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Notebooks handlers.NotebookService
	Ingester  handlers.Ingester
	Engine    rag.Engine
	Health    *handlers.HealthHandler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	notebookHandler := handlers.NewNotebookHandler(deps.Notebooks)
	sourceHandler := handlers.NewSourceHandler(deps.Notebooks, deps.Ingester)
	searchHandler := handlers.NewSearchHandler(deps.Notebooks, deps.Engine)

	r.Route("/api", func(r chi.Router) {
		if deps.Health != nil {
			r.Method(http.MethodGet, "/health", deps.Health)
		}

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Post("/notebooks", notebookHandler.Create)
			r.Get("/notebooks", notebookHandler.List)
			r.Route("/notebooks/{id}", func(r chi.Router) {
				r.Get("/", notebookHandler.Get)
				r.Delete("/", notebookHandler.Delete)
				r.Post("/sources", sourceHandler.Add)
				r.Get("/sources", sourceHandler.List)
				r.Delete("/sources/{sourceID}", sourceHandler.Delete)
				r.Method(http.MethodPost, "/search", searchHandler)
				r.Get("/stats", sourceHandler.Stats)
			})
		})
	})

	return r
}
