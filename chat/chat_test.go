package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadelabs/qreval-go/config"
)

func TestNew_Validation(t *testing.T) {
	_, err := New("openai", Options{Model: "m"})
	assert.Error(t, err)

	_, err = New("openai", Options{APIKey: "k"})
	assert.Error(t, err)

	_, err = New("carrier-pigeon", Options{APIKey: "k", Model: "m"})
	assert.Error(t, err)

	c, err := New("", Options{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &openaiClient{}, c)

	c, err = New("anthropic", Options{APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &anthropicClient{}, c)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		APIKey:    "sk-test",
		BaseURL:   "https://openrouter.ai/api/v1",
		Model:     "google/gemma-3-27b-it",
		Provider:  "openai",
		MaxTokens: 4096,
	}

	c, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openaiClient{}, c)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"model": "test-model",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "<svg></svg>"}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer server.Close()

	c, err := New("openai", Options{
		APIKey:    "sk-test",
		BaseURL:   server.URL,
		Model:     "test-model",
		MaxTokens: 4096,
	})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", out)

	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"), "unexpected path %q", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, float64(4096), gotBody["max_tokens"])

	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system prompt", first["content"])
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-123", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	c, err := New("openai", Options{APIKey: "sk-test", BaseURL: server.URL, Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, err := New("openai", Options{APIKey: "sk-test", BaseURL: server.URL, Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestAnthropicClient_Complete(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"model": "test-model",
			"content": [{"type": "text", "text": "<svg></svg>"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer server.Close()

	c, err := New("anthropic", Options{
		APIKey:    "sk-ant-test",
		BaseURL:   server.URL,
		Model:     "test-model",
		MaxTokens: 1024,
	})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", out)

	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, float64(1024), gotBody["max_tokens"])
}
