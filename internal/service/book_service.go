package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/platform/logger"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/store"
)

// BookService provides book-related operations.
// Write operations validate the payload before the store is touched.
type BookService interface {
	// List returns every book in insertion order.
	List(ctx context.Context) ([]domain.Book, error)

	// Get retrieves a book by isbn. Returns ErrBookNotFound if absent.
	Get(ctx context.Context, isbn string) (*domain.Book, error)

	// Create validates payload in create mode and stores the book.
	// Returns a *domain.ValidationError listing every violation.
	Create(ctx context.Context, payload schema.Payload) (*domain.Book, error)

	// Update validates payload in update mode and merges it onto the book
	// identified by isbn. Any isbn in the payload is ignored.
	Update(ctx context.Context, isbn string, payload schema.Payload) (*domain.Book, error)

	// Delete removes the book identified by isbn. Returns ErrBookNotFound if absent.
	Delete(ctx context.Context, isbn string) error
}

// BookServiceError wraps errors from the book service with context.
type BookServiceError struct {
	// Operation is the operation that failed (e.g., "create_book")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for BookServiceError.
func (e *BookServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("book service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("book service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BookServiceError) Unwrap() error {
	return e.Err
}

// NewBookServiceError creates a new BookServiceError.
// Known sentinel and validation errors are returned without wrapping.
func NewBookServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrBookNotFound) || errors.Is(err, store.ErrNotFound) {
		return ErrBookNotFound
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return &BookServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	books  store.BookStore
	schema *schema.Schema
	logger *slog.Logger
}

// NewBookService creates a new BookService.
// It returns an error if any of the required dependencies are nil.
func NewBookService(
	books store.BookStore,
	bookSchema *schema.Schema,
	logger *slog.Logger,
) (BookService, error) {
	if books == nil {
		return nil, &BookServiceError{
			Operation: "create_service",
			Message:   "books store cannot be nil",
		}
	}
	if bookSchema == nil {
		return nil, &BookServiceError{
			Operation: "create_service",
			Message:   "schema cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &bookServiceImpl{
		books:  books,
		schema: bookSchema,
		logger: logger.With(slog.String("component", "book_service")),
	}, nil
}

// List implements BookService.List.
func (s *bookServiceImpl) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, NewBookServiceError("list_books", "failed to list books", err)
	}
	return books, nil
}

// Get implements BookService.Get.
func (s *bookServiceImpl) Get(ctx context.Context, isbn string) (*domain.Book, error) {
	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, NewBookServiceError("get_book", "failed to retrieve book", err)
	}
	return book, nil
}

// Create implements BookService.Create.
func (s *bookServiceImpl) Create(ctx context.Context, payload schema.Payload) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if messages := s.schema.Validate(payload, schema.ModeCreate); len(messages) > 0 {
		log.Debug("book payload rejected",
			slog.String("mode", schema.ModeCreate.String()),
			slog.Int("violations", len(messages)))
		return nil, domain.NewValidationError(messages)
	}

	book, err := schema.BookFromPayload(payload)
	if err != nil {
		return nil, NewBookServiceError("create_book", "failed to convert payload", err)
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("isbn", book.ISBN))
		return nil, NewBookServiceError("create_book", "failed to save book", err)
	}
	return created, nil
}

// Update implements BookService.Update.
func (s *bookServiceImpl) Update(
	ctx context.Context,
	isbn string,
	payload schema.Payload,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload = s.schema.WithoutReadOnly(payload)
	if messages := s.schema.Validate(payload, schema.ModeUpdate); len(messages) > 0 {
		log.Debug("book payload rejected",
			slog.String("mode", schema.ModeUpdate.String()),
			slog.String("isbn", isbn),
			slog.Int("violations", len(messages)))
		return nil, domain.NewValidationError(messages)
	}

	patch, err := schema.PatchFromPayload(payload)
	if err != nil {
		return nil, NewBookServiceError("update_book", "failed to convert payload", err)
	}

	updated, err := s.books.Update(ctx, isbn, patch)
	if err != nil {
		return nil, NewBookServiceError("update_book", "failed to update book", err)
	}
	return updated, nil
}

// Delete implements BookService.Delete.
func (s *bookServiceImpl) Delete(ctx context.Context, isbn string) error {
	if err := s.books.Delete(ctx, isbn); err != nil {
		return NewBookServiceError("delete_book", "failed to delete book", err)
	}
	return nil
}
