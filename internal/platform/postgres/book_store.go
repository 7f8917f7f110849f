package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/platform/logger"
	"github.com/phrazzld/books-api/internal/store"
)

// DefaultQueryTimeout bounds each store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

const bookColumns = `isbn, amazon_url, author, language, pages, publisher, title, year`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db           store.DBTX
	logger       *slog.Logger
	queryTimeout time.Duration
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the BookStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used. A non-positive queryTimeout
// selects DefaultQueryTimeout.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger, queryTimeout time.Duration) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}

	return &PostgresBookStore{
		db:           db,
		logger:       logger.With(slog.String("component", "book_store")),
		queryTimeout: queryTimeout,
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ISBN,
		&b.AmazonURL,
		&b.Author,
		&b.Language,
		&b.Pages,
		&b.Publisher,
		&b.Title,
		&b.Year,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PostgresBookStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// List implements store.BookStore.List.
func (s *PostgresBookStore) List(ctx context.Context) ([]domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, store.NewStoreError("book", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	books := []domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("book", "list", "scan failed", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating book rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("book", "list", "row iteration failed", MapError(err))
	}

	log.Debug("books listed", slog.Int("count", len(books)))
	return books, nil
}

// GetByISBN implements store.BookStore.GetByISBN.
func (s *PostgresBookStore) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	log.Debug("retrieving book by isbn", slog.String("isbn", isbn))

	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	book, err := scanBook(s.db.QueryRowContext(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || IsMalformedKey(err) {
			log.Debug("book not found", slog.String("isbn", isbn))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by isbn",
			slog.String("error", err.Error()),
			slog.String("isbn", isbn))
		return nil, store.NewStoreError("book", "get", "query failed", MapError(err))
	}

	return book, nil
}

// Create implements store.BookStore.Create.
// Returns store.ErrBookExists if the isbn is already taken.
func (s *PostgresBookStore) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("isbn", book.ISBN))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookColumns

	created, err := scanBook(s.db.QueryRowContext(
		ctx,
		query,
		book.ISBN,
		book.AmazonURL,
		book.Author,
		book.Language,
		book.Pages,
		book.Publisher,
		book.Title,
		book.Year,
	))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate isbn on create", slog.String("isbn", book.ISBN))
			return nil, fmt.Errorf("%w: %s", store.ErrBookExists, book.ISBN)
		}
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("isbn", book.ISBN))
		return nil, store.NewStoreError("book", "create", "insert failed", MapError(err))
	}

	log.Info("book created", slog.String("isbn", created.ISBN))
	return created, nil
}

// Update implements store.BookStore.Update.
// The row is locked, merged with patch and written back in one transaction.
// An empty patch is a plain read.
func (s *PostgresBookStore) Update(
	ctx context.Context,
	isbn string,
	patch domain.BookPatch,
) (*domain.Book, error) {
	if patch.IsEmpty() {
		return s.GetByISBN(ctx, isbn)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	log.Debug("updating book", slog.String("isbn", isbn))

	var updated *domain.Book
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := scanBook(tx.QueryRowContext(
			ctx,
			`SELECT `+bookColumns+` FROM books WHERE isbn = $1 FOR UPDATE`,
			isbn,
		))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) || IsMalformedKey(err) {
				return store.ErrBookNotFound
			}
			return MapError(err)
		}

		merged := domain.ApplyPatch(*current, patch)
		if err := merged.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		updated, err = scanBook(tx.QueryRowContext(ctx, `
			UPDATE books
			SET amazon_url = $2, author = $3, language = $4, pages = $5,
			    publisher = $6, title = $7, year = $8, updated_at = NOW()
			WHERE isbn = $1
			RETURNING `+bookColumns,
			merged.ISBN,
			merged.AmazonURL,
			merged.Author,
			merged.Language,
			merged.Pages,
			merged.Publisher,
			merged.Title,
			merged.Year,
		))
		return MapError(err)
	})
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			log.Debug("book not found for update", slog.String("isbn", isbn))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("isbn", isbn))
		return nil, store.NewStoreError("book", "update", "update failed", err)
	}

	log.Info("book updated", slog.String("isbn", isbn))
	return updated, nil
}

// Delete implements store.BookStore.Delete.
func (s *PostgresBookStore) Delete(ctx context.Context, isbn string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		if IsMalformedKey(err) {
			return store.ErrBookNotFound
		}
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("isbn", isbn))
		return store.NewStoreError("book", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, "book"); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("book not found for delete", slog.String("isbn", isbn))
			return store.ErrBookNotFound
		}
		return store.NewStoreError("book", "delete", "rows affected check failed", err)
	}

	log.Info("book deleted", slog.String("isbn", isbn))
	return nil
}

// WithTx implements store.BookStore.WithTx.
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:           tx,
		logger:       s.logger,
		queryTimeout: s.queryTimeout,
	}
}
