// Package seed loads book fixtures from YAML and inserts them in a single
// transaction. Every fixture is checked with the same schema the API uses,
// so a file either loads completely or not at all.
package seed
