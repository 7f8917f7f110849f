// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. When a field is nil
// the mock falls back to a simple in-memory implementation, so most tests
// only override the behavior they care about:
//
//	books := mocks.NewMockBookStore()
//	books.DeleteFn = func(ctx context.Context, isbn string) error {
//	    return errors.New("connection reset")
//	}
package mocks
