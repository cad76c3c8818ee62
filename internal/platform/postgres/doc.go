// Package postgres provides the database/sql implementations of the store
// interfaces defined in internal/store, together with the embedded schema
// migrations. Production runs on PostgreSQL through pgx; the queries are kept
// portable so the same stores run on SQLite for local development and tests.
package postgres
