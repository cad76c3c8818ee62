package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "FLASHGEN"

// DefaultHuggingFaceModelURL is the hosted inference endpoint used when none is configured.
const DefaultHuggingFaceModelURL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-v0.1"

// legacyEnv maps config keys to the unprefixed variable names used by earlier
// deployments. Prefixed variables still take precedence.
var legacyEnv = map[string]string{
	"database.url":            "DATABASE_URL",
	"llm.huggingface_api_key": "HUGGINGFACE_API_KEY",
	"llm.gemini_api_key":      "GEMINI_API_KEY",
	"payment.secret_key":      "INTASEND_SECRET_KEY",
	"payment.publishable_key": "INTASEND_PUBLISHABLE_KEY",
	"payment.environment":     "INTASEND_ENV",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are unknown to AutomaticEnv during Unmarshal,
	// so they have to be bound explicitly. Legacy names are bound here too.
	for _, key := range []string{
		"database.url",
		"llm.huggingface_api_key",
		"llm.gemini_api_key",
		"payment.secret_key",
		"payment.publishable_key",
		"payment.environment",
		"payment.base_url",
		"tracing.otlp_endpoint",
	} {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func bindEnv(v *viper.Viper, key string) error {
	names := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if legacy, ok := legacyEnv[key]; ok {
		names = append(names, legacy)
	}
	args := append([]string{key}, names...)
	if err := v.BindEnv(args...); err != nil {
		return fmt.Errorf("failed to bind environment for %s: %w", key, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.migrate_on_start", true)

	v.SetDefault("llm.provider", "huggingface")
	v.SetDefault("llm.huggingface_model_url", DefaultHuggingFaceModelURL)
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.max_new_tokens", 500)
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.request_timeout_seconds", 45)
	v.SetDefault("llm.timeout_retry_delay_seconds", 10)
	v.SetDefault("llm.loading_padding_seconds", 10)
	v.SetDefault("llm.max_attempts", 2)
	v.SetDefault("llm.span_policy", "greedy")

	v.SetDefault("payment.environment", "sandbox")
	v.SetDefault("payment.currency", "KES")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "flashgen-api")
}
