// Package api exposes flashcard listing, creation and generation plus the
// payment charge over HTTP. Handlers decode and validate JSON, call into
// internal/service, and translate failures into status codes and client-safe
// messages.
package api
