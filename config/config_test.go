package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QREVAL_API_KEY",
		"OPENAI_API_KEY",
		"QREVAL_BASE_URL",
		"QREVAL_MODEL",
		"QREVAL_PROVIDER",
		"QREVAL_MAX_TOKENS",
		"QREVAL_OUTPUT_DIR",
		"QREVAL_REQUEST_DELAY",
		"QREVAL_OTLP_ENDPOINT",
		"QREVAL_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, "qr_outputs", cfg.OutputDir)
	assert.Equal(t, 2*time.Second, cfg.RequestDelay)
	assert.Equal(t, "", cfg.OTLPEndpoint)
	assert.False(t, cfg.Debug)
	assert.NotNil(t, cfg.Logger)
}

func TestFromEnv_LoadsEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("QREVAL_API_KEY", "sk-or-v1-test")
	t.Setenv("QREVAL_BASE_URL", "https://api.example.com/v1")
	t.Setenv("QREVAL_MODEL", "google/gemma-3-27b-it")
	t.Setenv("QREVAL_PROVIDER", "anthropic")
	t.Setenv("QREVAL_MAX_TOKENS", "1024")
	t.Setenv("QREVAL_OUTPUT_DIR", "/tmp/out")
	t.Setenv("QREVAL_REQUEST_DELAY", "500ms")
	t.Setenv("QREVAL_OTLP_ENDPOINT", "http://localhost:4318")
	t.Setenv("QREVAL_DEBUG", "true")

	cfg := FromEnv()

	assert.Equal(t, "sk-or-v1-test", cfg.APIKey)
	assert.Equal(t, "https://api.example.com/v1", cfg.BaseURL)
	assert.Equal(t, "google/gemma-3-27b-it", cfg.Model)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
	assert.True(t, cfg.Debug)
}

func TestFromEnv_APIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg := FromEnv()
	assert.Equal(t, "sk-fallback", cfg.APIKey)

	t.Setenv("QREVAL_API_KEY", "sk-primary")
	cfg = FromEnv()
	assert.Equal(t, "sk-primary", cfg.APIKey)
}

func TestFromEnv_TrimsWhitespace(t *testing.T) {
	clearEnv(t)
	t.Setenv("QREVAL_API_KEY", "  sk-with-spaces  ")
	t.Setenv("QREVAL_MODEL", "\tsome-model\t")

	cfg := FromEnv()

	assert.Equal(t, "sk-with-spaces", cfg.APIKey)
	assert.Equal(t, "some-model", cfg.Model)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("QREVAL_MAX_TOKENS", "lots")
	t.Setenv("QREVAL_REQUEST_DELAY", "soon")
	t.Setenv("QREVAL_DEBUG", "yes")

	cfg := FromEnv()

	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, 2*time.Second, cfg.RequestDelay)
	assert.False(t, cfg.Debug)
}
