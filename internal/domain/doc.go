// Package domain contains the core business entities of the application:
// flashcards and payment records. It is independent of any storage or
// delivery mechanism.
package domain
