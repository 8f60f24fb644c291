// Package chat provides minimal chat-completion clients for the providers
// the benchmark can talk to: any OpenAI-compatible endpoint (OpenAI,
// OpenRouter, ...) and Anthropic.
package chat

import (
	"context"
	"fmt"

	"github.com/cascadelabs/qreval-go/config"
	"github.com/cascadelabs/qreval-go/logger"
)

// Completer sends one system+user exchange to a model and returns the
// generated text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options configures a chat client.
type Options struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Logger    logger.Logger
}

// New creates a Completer for the given provider ("openai" or "anthropic").
func New(provider string, opts Options) (Completer, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("Model is required")
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = config.DefaultMaxTokens
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	switch provider {
	case "", "openai":
		return newOpenAIClient(opts), nil
	case "anthropic":
		return newAnthropicClient(opts), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", provider)
	}
}

// FromConfig creates a Completer from environment configuration.
func FromConfig(cfg *config.Config) (Completer, error) {
	return New(cfg.Provider, Options{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Logger:    cfg.Logger,
	})
}
