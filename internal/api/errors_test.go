package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/books-api/internal/api/shared"
	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/service"
	"github.com/phrazzld/books-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError([]string{"instance.pages must be greater than or equal to 1"}),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			err:            fmt.Errorf("%w: unexpected EOF", shared.ErrMalformedJSON),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "body too large",
			err:            shared.ErrRequestTooLarge,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "service not found",
			err:            service.ErrBookNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped store not found",
			err:            fmt.Errorf("lookup: %w", store.ErrBookNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicate isbn",
			err:            &service.BookServiceError{Operation: "create_book", Err: store.ErrBookExists},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "constraint violation",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unknown error",
			err:            errors.New("connection reset by peer"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected any
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{
			"validation list",
			domain.NewValidationError([]string{"a", "b"}),
			[]string{"a", "b"},
		},
		{"empty validation list", domain.NewValidationError(nil), []string{}},
		{"malformed json", shared.ErrMalformedJSON, "Invalid JSON request body"},
		{"too large", shared.ErrRequestTooLarge, "Request body too large"},
		{"not found", service.ErrBookNotFound, "Book not found"},
		{"internal detail is hidden", errors.New("pq: password authentication failed"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}
