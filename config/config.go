// Package config provides configuration management for qreval.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cascadelabs/qreval-go/logger"
)

// Default values used when the corresponding environment variable is unset.
const (
	DefaultBaseURL   = "https://openrouter.ai/api/v1"
	DefaultModel     = "deepseek/deepseek-chat-v3-0324:free"
	DefaultOutputDir = "qr_outputs"
	DefaultDelay     = 2 * time.Second
	DefaultMaxTokens = 4096
)

// Config holds immutable configuration for a qreval run.
type Config struct {
	// Chat API
	APIKey    string
	BaseURL   string
	Model     string
	Provider  string // "openai" (any OpenAI-compatible endpoint) or "anthropic"
	MaxTokens int

	// Evaluation run
	OutputDir    string
	RequestDelay time.Duration
	Debug        bool

	// Tracing
	OTLPEndpoint string

	// Logger
	Logger logger.Logger
}

// FromEnv loads configuration from environment variables with defaults.
//
// Supported environment variables:
//   - QREVAL_API_KEY: API key for the chat API (falls back to OPENAI_API_KEY)
//   - QREVAL_BASE_URL: chat-completion endpoint base URL (default: OpenRouter v1)
//   - QREVAL_MODEL: model identifier passed to the API
//   - QREVAL_PROVIDER: chat backend, "openai" or "anthropic" (default: "openai")
//   - QREVAL_MAX_TOKENS: max-token budget per completion (default: 4096)
//   - QREVAL_OUTPUT_DIR: directory for generated SVG files and reports (default: "qr_outputs")
//   - QREVAL_REQUEST_DELAY: pause between API calls, e.g. "2s" (default: 2s)
//   - QREVAL_OTLP_ENDPOINT: OTLP/HTTP trace collector endpoint (tracing off when unset)
//   - QREVAL_DEBUG: enable debug logging (default: false)
func FromEnv() *Config {
	return &Config{
		APIKey:       getEnvString("QREVAL_API_KEY", getEnvString("OPENAI_API_KEY", "")),
		BaseURL:      getEnvString("QREVAL_BASE_URL", DefaultBaseURL),
		Model:        getEnvString("QREVAL_MODEL", DefaultModel),
		Provider:     getEnvString("QREVAL_PROVIDER", "openai"),
		MaxTokens:    getEnvInt("QREVAL_MAX_TOKENS", DefaultMaxTokens),
		OutputDir:    getEnvString("QREVAL_OUTPUT_DIR", DefaultOutputDir),
		RequestDelay: getEnvDuration("QREVAL_REQUEST_DELAY", DefaultDelay),
		OTLPEndpoint: getEnvString("QREVAL_OTLP_ENDPOINT", ""),
		Debug:        getEnvBool("QREVAL_DEBUG", false),
		Logger:       logger.NewDefaultLogger(),
	}
}

// getEnvString returns the trimmed environment variable value or the default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// getEnvBool returns the environment variable as a bool or the default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(strings.TrimSpace(value)) == "true"
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or the default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable parsed with time.ParseDuration
// or the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}
