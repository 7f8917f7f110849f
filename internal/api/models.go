package api

import "github.com/phrazzld/books-api/internal/domain"

// BooksResponse is the body of GET /books. Books is never null.
type BooksResponse struct {
	Books []domain.Book `json:"books"`
}

// BookResponse wraps a single book.
type BookResponse struct {
	Book *domain.Book `json:"book"`
}

// HealthResponse is the body of the health and readiness probes.
type HealthResponse struct {
	Status string `json:"status"`
}
