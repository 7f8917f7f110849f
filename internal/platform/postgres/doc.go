// Package postgres provides the PostgreSQL implementation of the store
// interfaces, together with the embedded goose migrations that create the
// schema it reads and writes.
package postgres
