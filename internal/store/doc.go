// Package store defines the persistence contracts of the books API.
// Implementations live under internal/platform; callers depend only on
// the interfaces and sentinel errors declared here.
package store
