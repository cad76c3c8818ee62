// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, a local .env file, config
// files). It provides type-safe access to the settings needed by the
// inference, payment and storage components while keeping credentials out
// of package-level state: every client receives its configuration value
// explicitly at construction time.
package config
