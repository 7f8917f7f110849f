package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/store"
)

// MockBookStore implements store.BookStore for testing
type MockBookStore struct {
	// Function fields for customizable behavior
	ListFn      func(ctx context.Context) ([]domain.Book, error)
	GetByISBNFn func(ctx context.Context, isbn string) (*domain.Book, error)
	CreateFn    func(ctx context.Context, book domain.Book) (*domain.Book, error)
	UpdateFn    func(ctx context.Context, isbn string, patch domain.BookPatch) (*domain.Book, error)
	DeleteFn    func(ctx context.Context, isbn string) error

	// Data for default implementation
	mu    sync.Mutex
	books map[string]domain.Book
	order []string

	// Calls counts every store method invocation by name.
	Calls map[string]int
}

var _ store.BookStore = (*MockBookStore)(nil)

// NewMockBookStore creates a new mock store holding the given books in order.
func NewMockBookStore(books ...domain.Book) *MockBookStore {
	m := &MockBookStore{
		books: make(map[string]domain.Book),
		Calls: make(map[string]int),
	}
	for _, b := range books {
		m.books[b.ISBN] = b
		m.order = append(m.order, b.ISBN)
	}
	return m
}

func (m *MockBookStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
}

// CallCount returns how many times the named method was called.
func (m *MockBookStore) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

// TotalCalls returns the number of calls across all methods.
func (m *MockBookStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.Calls {
		total += n
	}
	return total
}

// List implements the BookStore interface
func (m *MockBookStore) List(ctx context.Context) ([]domain.Book, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]domain.Book, 0, len(m.order))
	for _, isbn := range m.order {
		books = append(books, m.books[isbn])
	}
	return books, nil
}

// GetByISBN implements the BookStore interface
func (m *MockBookStore) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	m.record("GetByISBN")
	if m.GetByISBNFn != nil {
		return m.GetByISBNFn(ctx, isbn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[isbn]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return &b, nil
}

// Create implements the BookStore interface
func (m *MockBookStore) Create(ctx context.Context, book domain.Book) (*domain.Book, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.books[book.ISBN]; exists {
		return nil, store.ErrBookExists
	}
	m.books[book.ISBN] = book
	m.order = append(m.order, book.ISBN)
	return &book, nil
}

// Update implements the BookStore interface
func (m *MockBookStore) Update(
	ctx context.Context,
	isbn string,
	patch domain.BookPatch,
) (*domain.Book, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, isbn, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.books[isbn]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	merged := domain.ApplyPatch(current, patch)
	m.books[isbn] = merged
	return &merged, nil
}

// Delete implements the BookStore interface
func (m *MockBookStore) Delete(ctx context.Context, isbn string) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, isbn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[isbn]; !ok {
		return store.ErrBookNotFound
	}
	delete(m.books, isbn)
	for i, v := range m.order {
		if v == isbn {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// WithTx implements the BookStore interface. The mock has no transactions,
// so the same store is returned.
func (m *MockBookStore) WithTx(_ *sql.Tx) store.BookStore {
	return m
}
