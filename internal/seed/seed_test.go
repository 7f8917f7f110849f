package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/mocks"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/testutils"
)

const fixtures = `
books:
  - isbn: "0132350884"
    amazon_url: http://a.co/eobPtX2
    author: Robert C. Martin
    language: english
    pages: 400
    publisher: University Press
    title: "Clean Code: A Handbook of Agile Software Craftsmanship"
    year: 2018
  - isbn: "0691161518"
    amazon_url: http://a.co/eobPtX2
    author: Matthew Lane
    language: english
    pages: 264
    publisher: Princeton University Press
    title: "Power-Up: Unlocking the Hidden Mathematics in Video Games"
    year: 2017
`

func newSeeder(t *testing.T, books *mocks.MockBookStore) (*Seeder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSeeder(db, books, schema.NewBookSchema(schema.DefaultMaxYear), nil), mock
}

func TestParse(t *testing.T) {
	payloads, err := Parse(strings.NewReader(fixtures))

	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "0132350884", payloads[0]["isbn"])
	assert.Equal(t, 400, payloads[0]["pages"])

	empty, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = Parse(strings.NewReader("novels:\n  - title: x\n"))
	assert.Error(t, err, "unknown top-level keys are rejected")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtures), 0o600))

	payloads, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, payloads, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeederRun(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts all fixtures in one transaction", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		s, mock := newSeeder(t, books)
		mock.ExpectBegin()
		mock.ExpectCommit()

		payloads, err := Parse(strings.NewReader(fixtures))
		require.NoError(t, err)
		result, err := s.Run(ctx, payloads, Options{})

		require.NoError(t, err)
		assert.Equal(t, Result{Inserted: 2}, result)
		stored, err := books.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Book{testutils.CleanCodeBook(), testutils.PowerUpBook()}, stored)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skip existing", func(t *testing.T) {
		books := mocks.NewMockBookStore(testutils.CleanCodeBook())
		s, mock := newSeeder(t, books)
		mock.ExpectBegin()
		mock.ExpectCommit()

		payloads, err := Parse(strings.NewReader(fixtures))
		require.NoError(t, err)
		result, err := s.Run(ctx, payloads, Options{SkipExisting: true})

		require.NoError(t, err)
		assert.Equal(t, Result{Inserted: 1, Skipped: 1}, result)
	})

	t.Run("existing book fails the run without skip", func(t *testing.T) {
		books := mocks.NewMockBookStore(testutils.CleanCodeBook())
		s, mock := newSeeder(t, books)
		mock.ExpectBegin()
		mock.ExpectRollback()

		payloads, err := Parse(strings.NewReader(fixtures))
		require.NoError(t, err)
		_, err = s.Run(ctx, payloads, Options{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "0132350884")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid fixtures never open a transaction", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		s, mock := newSeeder(t, books)

		_, err := s.Run(ctx, []schema.Payload{
			{"isbn": "1", "pages": 0},
		}, Options{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Messages, `books[0]: instance requires property "title"`)
		assert.Contains(t, validationErr.Messages, "books[0]: instance.pages must be greater than or equal to 1")
		assert.Zero(t, books.TotalCalls())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		books.GetByISBNFn = func(ctx context.Context, isbn string) (*domain.Book, error) {
			return nil, errors.New("connection reset")
		}
		s, mock := newSeeder(t, books)
		mock.ExpectBegin()
		mock.ExpectRollback()

		payloads, err := Parse(strings.NewReader(fixtures))
		require.NoError(t, err)
		_, err = s.Run(ctx, payloads, Options{SkipExisting: true})

		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestSeederValidateDuplicates(t *testing.T) {
	s, _ := newSeeder(t, mocks.NewMockBookStore())
	book := testutils.BookBody(testutils.CleanCodeBook())

	err := s.Validate([]schema.Payload{book, book})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{`books[1]: isbn "0132350884" duplicates books[0]`}, validationErr.Messages)
}

func TestNewSeederPanics(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	sch := schema.NewBookSchema(2021)

	assert.Panics(t, func() { NewSeeder(nil, mocks.NewMockBookStore(), sch, nil) })
	assert.Panics(t, func() { NewSeeder(db, nil, sch, nil) })
	assert.Panics(t, func() { NewSeeder(db, mocks.NewMockBookStore(), nil, nil) })
}
