package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/platform/logger"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/store"
)

// File is the on-disk fixture layout:
//
//	books:
//	  - isbn: "0132350884"
//	    amazon_url: http://a.co/eobPtX2
//	    ...
type File struct {
	Books []map[string]any `yaml:"books"`
}

// Options controls how fixtures are applied.
type Options struct {
	// SkipExisting leaves books whose isbn is already stored untouched
	// instead of failing the whole run.
	SkipExisting bool
}

// Result reports what a run did.
type Result struct {
	Inserted int
	Skipped  int
}

// Parse decodes fixtures from r.
func Parse(r io.Reader) ([]schema.Payload, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []schema.Payload{}, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	payloads := make([]schema.Payload, 0, len(f.Books))
	for _, b := range f.Books {
		payloads = append(payloads, schema.Payload(b))
	}
	return payloads, nil
}

// LoadFile reads and decodes the fixture file at path.
func LoadFile(path string) ([]schema.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Seeder inserts validated fixtures through a BookStore.
type Seeder struct {
	db     store.DBTX
	books  store.BookStore
	schema *schema.Schema
	logger *slog.Logger
}

// NewSeeder creates a Seeder. db is used to open the transaction that
// books is bound to for the run.
func NewSeeder(db store.DBTX, books store.BookStore, bookSchema *schema.Schema, logger *slog.Logger) *Seeder {
	if db == nil {
		panic("db cannot be nil")
	}
	if books == nil {
		panic("books store cannot be nil")
	}
	if bookSchema == nil {
		panic("schema cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		db:     db,
		books:  books,
		schema: bookSchema,
		logger: logger.With(slog.String("component", "seeder")),
	}
}

// Validate checks every fixture in create mode. Violations are prefixed
// with the fixture index so they can be traced back to the file.
func (s *Seeder) Validate(payloads []schema.Payload) error {
	var messages []string
	seen := make(map[string]int, len(payloads))
	for i, p := range payloads {
		for _, m := range s.schema.Validate(p, schema.ModeCreate) {
			messages = append(messages, fmt.Sprintf("books[%d]: %s", i, m))
		}
		if isbn, ok := p[schema.FieldISBN].(string); ok {
			if first, dup := seen[isbn]; dup {
				messages = append(messages,
					fmt.Sprintf("books[%d]: isbn %q duplicates books[%d]", i, isbn, first))
				continue
			}
			seen[isbn] = i
		}
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages)
	}
	return nil
}

// Run validates payloads and inserts them in one transaction.
func (s *Seeder) Run(ctx context.Context, payloads []schema.Payload, opts Options) (Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.Validate(payloads); err != nil {
		log.Warn("fixtures rejected", slog.String("error", err.Error()))
		return Result{}, err
	}

	var result Result
	err := store.RunInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.books.WithTx(tx)
		result = Result{}

		for _, p := range payloads {
			book, err := schema.BookFromPayload(p)
			if err != nil {
				return err
			}

			if opts.SkipExisting {
				_, err := txBooks.GetByISBN(ctx, book.ISBN)
				switch {
				case err == nil:
					log.Debug("skipping existing book", slog.String("isbn", book.ISBN))
					result.Skipped++
					continue
				case !store.IsNotFoundError(err):
					return fmt.Errorf("failed to check book %s: %w", book.ISBN, err)
				}
			}

			if _, err := txBooks.Create(ctx, book); err != nil {
				return fmt.Errorf("failed to insert book %s: %w", book.ISBN, err)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		return Result{}, err
	}

	log.Info("seeding completed",
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	return result, nil
}
