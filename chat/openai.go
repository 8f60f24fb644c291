package chat

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/cascadelabs/qreval-go/logger"
)

// openaiClient talks to any OpenAI-compatible chat-completion endpoint.
// OpenRouter works with the stock client as long as the base URL points at
// its v1 API and the model id uses OpenRouter's provider/model convention.
type openaiClient struct {
	client    openai.Client
	model     string
	maxTokens int
	log       logger.Logger
}

func newOpenAIClient(opts Options) *openaiClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &openaiClient{
		client:    openai.NewClient(reqOpts...),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		log:       opts.Logger,
	}
}

func (c *openaiClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.log.Debug("chat completion request", "provider", "openai", "model", c.model)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
