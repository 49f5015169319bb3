package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docqa/internal/handlers"
	"docqa/internal/rag"
	"docqa/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine      rag.Engine
	Pipeline       handlers.Ingestor
	DocRepo        storage.DocumentStore
	VectorStore    handlers.CollectionChecker
	ObjectStore    handlers.Pinger
	CollectionName string
}

// NewRouter creates the HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	askHandler := handlers.NewAskHandler(deps.RAGEngine)
	ingestHandler := handlers.NewIngestHandler(deps.Pipeline)
	documentsHandler := handlers.NewDocumentsHandler(deps.DocRepo)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.ObjectStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", askHandler)
			r.Method(http.MethodPost, "/ingest", ingestHandler)
			r.Method(http.MethodGet, "/documents", documentsHandler)
		})
	})

	return r
}
