// Package store declares the persistence contracts for flashcards and payment
// records. Implementations live under internal/platform; services depend only
// on these interfaces and on the sentinel errors in errors.go.
package store
