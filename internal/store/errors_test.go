package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("failed: %w", ErrNotFound), expected: true},
		{name: "ErrBookNotFound", err: ErrBookNotFound, expected: true},
		{name: "wrapped ErrBookNotFound", err: fmt.Errorf("get book: %w", ErrBookNotFound), expected: true},
		{name: "ErrBookExists", err: ErrBookExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrBookExists", err: ErrBookExists, expected: true},
		{name: "wrapped ErrBookExists", err: fmt.Errorf("create: %w", ErrBookExists), expected: true},
		{name: "ErrBookNotFound", err: ErrBookNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("book", "create", "insert failed", cause)

	assert.Equal(t, "create operation on book failed: insert failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("book", "delete", "no rows", nil)
	assert.Equal(t, "delete operation on book failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
