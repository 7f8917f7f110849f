// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings of the HTTP server, the database pool
// and the book schema while keeping configuration details separate from
// business logic.
package config
