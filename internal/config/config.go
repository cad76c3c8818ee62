package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Payment  PaymentConfig  `mapstructure:"payment" validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the database/sql driver: "postgres" (pgx) or "sqlite".
	Driver         string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL            string `mapstructure:"url" validate:"required"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=huggingface gemini"`

	HuggingFaceAPIKey   string `mapstructure:"huggingface_api_key" validate:"required_if=Provider huggingface"`
	HuggingFaceModelURL string `mapstructure:"huggingface_model_url" validate:"required,url"`

	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModel  string `mapstructure:"gemini_model" validate:"required"`

	MaxNewTokens int     `mapstructure:"max_new_tokens" validate:"gt=0"`
	Temperature  float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	RequestTimeoutSeconds    int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	TimeoutRetryDelaySeconds int    `mapstructure:"timeout_retry_delay_seconds" validate:"gte=0"`
	LoadingPaddingSeconds    int    `mapstructure:"loading_padding_seconds" validate:"gte=0"`
	MaxAttempts              int    `mapstructure:"max_attempts" validate:"gte=1,lte=2"`
	SpanPolicy               string `mapstructure:"span_policy" validate:"required,oneof=greedy balanced"`
}

// RequestTimeout returns the per-attempt deadline for inference calls.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TimeoutRetryDelay returns the fixed pause taken before retrying a timed-out call.
func (c LLMConfig) TimeoutRetryDelay() time.Duration {
	return time.Duration(c.TimeoutRetryDelaySeconds) * time.Second
}

// LoadingPadding returns the extra wait added to a provider's loading estimate.
func (c LLMConfig) LoadingPadding() time.Duration {
	return time.Duration(c.LoadingPaddingSeconds) * time.Second
}

// PaymentConfig contains the payment provider settings.
type PaymentConfig struct {
	SecretKey      string `mapstructure:"secret_key" validate:"required"`
	PublishableKey string `mapstructure:"publishable_key"`
	Environment    string `mapstructure:"environment" validate:"required,oneof=sandbox live"`
	Currency       string `mapstructure:"currency" validate:"required,len=3"`
	// BaseURL overrides the environment-derived provider URL. Used by tests.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// IsSandbox reports whether charges go to the provider's test environment.
func (c PaymentConfig) IsSandbox() bool {
	return c.Environment == "sandbox"
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint" validate:"required_if=Enabled true"`
	ServiceName  string `mapstructure:"service_name"`
}
