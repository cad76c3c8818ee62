// Package service contains the application use cases. It orchestrates the
// generation pipeline, the stores defined in internal/store and the payment
// provider, and is the only layer the HTTP handlers talk to.
//
// Services receive their collaborators through constructor injection and
// never reach for process-wide clients or configuration.
package service
