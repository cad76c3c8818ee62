// Package generation turns free-form study notes into flashcards using a
// hosted text-generation model. It owns the parts of that process that do
// not depend on a particular provider: prompt rendering, the bounded retry
// policy around a single inference call, locating JSON inside the model's
// prose, and validating what was found into at most MaxFlashcards cards.
//
// Provider clients (internal/platform/huggingface, internal/platform/gemini)
// implement TextGenerator and report provider conditions using the errors
// defined here, so the retry policy can be expressed once.
package generation
