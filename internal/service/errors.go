package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrBookNotFound indicates that no book has the requested isbn.
	// API layer should map this to HTTP 404 Not Found.
	ErrBookNotFound = errors.New("book not found")
)
