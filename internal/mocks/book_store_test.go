package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/store"
)

func TestMockBookStoreDefaults(t *testing.T) {
	ctx := context.Background()
	m := NewMockBookStore(domain.Book{ISBN: "b"}, domain.Book{ISBN: "a"})

	_, err := m.Create(ctx, domain.Book{ISBN: "c"})
	require.NoError(t, err)
	_, err = m.Create(ctx, domain.Book{ISBN: "a"})
	assert.ErrorIs(t, err, store.ErrBookExists)

	books, err := m.List(ctx)
	require.NoError(t, err)
	isbns := make([]string, 0, len(books))
	for _, b := range books {
		isbns = append(isbns, b.ISBN)
	}
	assert.Equal(t, []string{"b", "a", "c"}, isbns)

	title := "New"
	updated, err := m.Update(ctx, "a", domain.BookPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.ISBN)
	assert.Equal(t, "New", updated.Title)

	require.NoError(t, m.Delete(ctx, "b"))
	_, err = m.GetByISBN(ctx, "b")
	assert.ErrorIs(t, err, store.ErrBookNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "b"), store.ErrBookNotFound)

	assert.Equal(t, 2, m.CallCount("Create"))
	assert.Equal(t, 7, m.TotalCalls())
	assert.Same(t, m, m.WithTx(nil))
}

func TestMockBookStoreOverrides(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockBookStore()
	m.ListFn = func(ctx context.Context) ([]domain.Book, error) { return nil, boom }

	_, err := m.List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.CallCount("List"))
}
