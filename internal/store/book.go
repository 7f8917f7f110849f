package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/books-api/internal/domain"
)

// BookStore defines the interface for book persistence.
// Every method is atomic at the level of a single row.
type BookStore interface {
	// List returns every book in insertion order.
	// Returns an empty, non-nil slice when there are no books.
	List(ctx context.Context) ([]domain.Book, error)

	// GetByISBN retrieves a book by its isbn.
	// Returns ErrBookNotFound if no book matches, including when the isbn
	// is malformed.
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)

	// Create inserts a new book and returns the stored row.
	// Returns ErrBookExists if the isbn is already taken.
	Create(ctx context.Context, book domain.Book) (*domain.Book, error)

	// Update merges the non-nil fields of patch onto the book identified by
	// isbn and returns the result. The isbn itself is never modified.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, isbn string, patch domain.BookPatch) (*domain.Book, error)

	// Delete removes the book identified by isbn.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, isbn string) error

	// WithTx returns a BookStore bound to the given transaction, so several
	// operations can be committed or rolled back together.
	//
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return seedAll(ctx, bookStore.WithTx(tx))
	//   })
	WithTx(tx *sql.Tx) BookStore
}
