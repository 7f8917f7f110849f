package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/mocks"
	"github.com/phrazzld/books-api/internal/schema"
	"github.com/phrazzld/books-api/internal/store"
)

func powerUp() domain.Book {
	return domain.Book{
		ISBN:      "0691161518",
		AmazonURL: "http://a.co/eobPtX2",
		Author:    "Matthew Lane",
		Language:  "english",
		Pages:     264,
		Publisher: "Princeton University Press",
		Title:     "Power-Up: Unlocking the Hidden Mathematics in Video Games",
		Year:      2017,
	}
}

func cleanCodePayload() schema.Payload {
	return schema.Payload{
		"isbn":       "0132350884",
		"amazon_url": "http://a.co/eobPtX2",
		"author":     "Robert C. Martin",
		"language":   "english",
		"pages":      json.Number("400"),
		"publisher":  "University Press",
		"title":      "Clean Code: A Handbook of Agile Software Craftsmanship",
		"year":       json.Number("2018"),
	}
}

func newTestService(t *testing.T, books *mocks.MockBookStore) BookService {
	t.Helper()
	svc, err := NewBookService(books, schema.NewBookSchema(schema.DefaultMaxYear), nil)
	require.NoError(t, err)
	return svc
}

func TestNewBookService(t *testing.T) {
	bookSchema := schema.NewBookSchema(schema.DefaultMaxYear)

	_, err := NewBookService(nil, bookSchema, nil)
	var svcErr *BookServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_service", svcErr.Operation)

	_, err = NewBookService(mocks.NewMockBookStore(), nil, nil)
	assert.Error(t, err)

	svc, err := NewBookService(mocks.NewMockBookStore(), bookSchema, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBookServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload is stored", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		svc := newTestService(t, books)

		created, err := svc.Create(ctx, cleanCodePayload())

		require.NoError(t, err)
		assert.Equal(t, "0132350884", created.ISBN)
		assert.Equal(t, 400, created.Pages)
		assert.Equal(t, 1, books.CallCount("Create"))
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		svc := newTestService(t, books)
		p := cleanCodePayload()
		delete(p, "publisher")
		p["pages"] = json.Number("-400")

		_, err := svc.Create(ctx, p)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{
			`instance requires property "publisher"`,
			"instance.pages must be greater than or equal to 1",
		}, validationErr.Messages)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, books.TotalCalls())
	})

	t.Run("duplicate isbn is a store failure", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		svc := newTestService(t, books)
		_, err := svc.Create(ctx, cleanCodePayload())
		require.NoError(t, err)

		_, err = svc.Create(ctx, cleanCodePayload())

		var svcErr *BookServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NotErrorIs(t, err, ErrBookNotFound)
	})
}

func TestBookServiceGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, mocks.NewMockBookStore(powerUp()))

	book, err := svc.Get(ctx, "0691161518")
	require.NoError(t, err)
	assert.Equal(t, powerUp(), *book)

	_, err = svc.Get(ctx, "0691161518abracadabra")
	assert.Equal(t, ErrBookNotFound, err)
}

func TestBookServiceList(t *testing.T) {
	ctx := context.Background()

	books, err := newTestService(t, mocks.NewMockBookStore()).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	failing := mocks.NewMockBookStore()
	failing.ListFn = func(ctx context.Context) ([]domain.Book, error) {
		return nil, errors.New("connection refused")
	}
	_, err = newTestService(t, failing).List(ctx)
	var svcErr *BookServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "list_books", svcErr.Operation)
}

func TestBookServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("full replacement keeps path isbn", func(t *testing.T) {
		books := mocks.NewMockBookStore(powerUp())
		svc := newTestService(t, books)
		p := cleanCodePayload()
		p["isbn"] = "9999999999"

		updated, err := svc.Update(ctx, "0691161518", p)

		require.NoError(t, err)
		assert.Equal(t, "0691161518", updated.ISBN)
		assert.Equal(t, "Robert C. Martin", updated.Author)
		assert.Equal(t, 2018, updated.Year)

		_, err = svc.Get(ctx, "9999999999")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		svc := newTestService(t, mocks.NewMockBookStore(powerUp()))

		updated, err := svc.Update(ctx, "0691161518", schema.Payload{"pages": json.Number("300")})

		require.NoError(t, err)
		assert.Equal(t, 300, updated.Pages)
		assert.Equal(t, powerUp().Title, updated.Title)
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		books := mocks.NewMockBookStore()
		svc := newTestService(t, books)

		_, err := svc.Update(ctx, "missing", schema.Payload{"year": json.Number("2023")})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"instance.year must be less than or equal to 2021"}, validationErr.Messages)
		assert.Zero(t, books.TotalCalls())
	})

	t.Run("missing book", func(t *testing.T) {
		svc := newTestService(t, mocks.NewMockBookStore())

		_, err := svc.Update(ctx, "missing", schema.Payload{"title": "x"})

		assert.Equal(t, ErrBookNotFound, err)
	})
}

func TestBookServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, mocks.NewMockBookStore(powerUp()))

	require.NoError(t, svc.Delete(ctx, "0691161518"))
	assert.Equal(t, ErrBookNotFound, svc.Delete(ctx, "0691161518"))
}

func TestNewBookServiceError(t *testing.T) {
	assert.NoError(t, NewBookServiceError("op", "msg", nil))
	assert.Equal(t, ErrBookNotFound, NewBookServiceError("op", "msg", store.ErrBookNotFound))

	validationErr := domain.NewValidationError([]string{"m"})
	assert.Same(t, validationErr, NewBookServiceError("op", "msg", validationErr))

	err := NewBookServiceError("get_book", "failed", errors.New("boom"))
	assert.EqualError(t, err, "book service get_book failed: failed: boom")
}
