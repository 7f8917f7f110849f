package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/books-api/internal/api/shared"
	"github.com/phrazzld/books-api/internal/domain"
	"github.com/phrazzld/books-api/internal/service"
	"github.com/phrazzld/books-api/internal/store"
)

// Messages returned to clients. They never carry internal error detail.
const (
	msgUnexpected       = "An unexpected error occurred"
	msgInvalidJSON      = "Invalid JSON request body"
	msgBodyTooLarge     = "Request body too large"
	msgBookNotFound     = "Book not found"
	msgBookDeleted      = "Book deleted"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgDatabaseOffline  = "Database unavailable"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Duplicate isbns and constraint violations are storage failures and map to
// 500 like any other unexpected error.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrMalformedJSON):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err.
// Validation errors yield the full ordered list of violations; every other
// error yields a fixed string.
func GetSafeErrorMessage(err error) any {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		if validationErr.Messages == nil {
			return []string{}
		}
		return validationErr.Messages

	case errors.Is(err, shared.ErrMalformedJSON):
		return msgInvalidJSON

	case errors.Is(err, shared.ErrRequestTooLarge):
		return msgBodyTooLarge

	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgBookNotFound

	default:
		return msgUnexpected
	}
}
