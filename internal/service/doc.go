// Package service contains the application use cases. It sits between the
// HTTP handlers and the store: write paths run the schema validator first and
// only reach the store with a payload that passed every rule.
//
// Expected conditions are reported as sentinel errors (ErrBookNotFound) or as
// a *domain.ValidationError; anything else is wrapped in a BookServiceError.
package service
