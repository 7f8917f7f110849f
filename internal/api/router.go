package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/books-api/internal/api/middleware"
	"github.com/phrazzld/books-api/internal/api/shared"
)

// NewRouter wires every route onto a chi router with the standard
// middleware stack.
func NewRouter(books *BookHandler, health *HealthHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware(logger))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	r.Route("/books", func(r chi.Router) {
		r.Get("/", books.ListBooks)
		r.Post("/", books.CreateBook)
		r.Get("/{isbn}", books.GetBook)
		r.Put("/{isbn}", books.UpdateBook)
		r.Delete("/{isbn}", books.DeleteBook)
	})

	return r
}
