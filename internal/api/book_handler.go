package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/books-api/internal/api/shared"
	"github.com/phrazzld/books-api/internal/platform/logger"
	"github.com/phrazzld/books-api/internal/service"
)

// DefaultMaxBodyBytes limits request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	books        service.BookService
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewBookHandler creates a new BookHandler.
// A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func NewBookHandler(books service.BookService, logger *slog.Logger, maxBodyBytes int64) *BookHandler {
	if books == nil {
		panic("books service cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &BookHandler{
		books:        books,
		logger:       logger.With(slog.String("component", "book_handler")),
		maxBodyBytes: maxBodyBytes,
	}
}

// ListBooks handles GET /books.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BooksResponse{Books: books})
}

// GetBook handles GET /books/{isbn}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	isbn := getPathISBN(r)

	book, err := h.books.Get(r.Context(), isbn)
	if err != nil {
		h.respondWithServiceError(w, r, err, fmt.Sprintf("There is no book with an isbn '%s", isbn))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BookResponse{Book: book})
}

// CreateBook handles POST /books.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	payload, err := shared.DecodePayload(r)
	if err != nil {
		h.respondWithServiceError(w, r, err, "")
		return
	}

	book, err := h.books.Create(r.Context(), payload)
	if err != nil {
		h.respondWithServiceError(w, r, err, "")
		return
	}

	log.Info("book created via API", slog.String("isbn", book.ISBN))
	shared.RespondWithJSON(w, r, http.StatusCreated, BookResponse{Book: book})
}

// UpdateBook handles PUT /books/{isbn}. Fields absent from the body keep
// their stored values and the isbn always comes from the path.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	isbn := getPathISBN(r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	payload, err := shared.DecodePayload(r)
	if err != nil {
		h.respondWithServiceError(w, r, err, "")
		return
	}

	book, err := h.books.Update(r.Context(), isbn, payload)
	if err != nil {
		h.respondWithServiceError(w, r, err, msgBookNotFound)
		return
	}

	log.Info("book updated via API", slog.String("isbn", isbn))
	shared.RespondWithJSON(w, r, http.StatusOK, BookResponse{Book: book})
}

// DeleteBook handles DELETE /books/{isbn}.
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	isbn := getPathISBN(r)

	if err := h.books.Delete(r.Context(), isbn); err != nil {
		h.respondWithServiceError(w, r, err, msgBookNotFound)
		return
	}

	log.Info("book deleted via API", slog.String("isbn", isbn))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: msgBookDeleted})
}

// respondWithServiceError writes the response for err. notFoundMessage,
// when set, replaces the default 404 message.
func (h *BookHandler) respondWithServiceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	notFoundMessage string,
) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusNotFound && notFoundMessage != "" {
		message = notFoundMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
