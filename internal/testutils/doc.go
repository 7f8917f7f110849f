// Package testutils holds fixtures and helpers shared by tests across
// packages: canonical books and payloads, HTTP request helpers and an
// in-memory slog handler for log assertions.
package testutils
