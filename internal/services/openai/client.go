package openai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/httpclient"
	"github.com/socialchef/leftover/internal/logger"
	"github.com/socialchef/leftover/internal/metrics"
)

const (
	// Model is the chat model every completion uses.
	Model = goopenai.GPT3Dot5Turbo
	// MaxTokens caps the generated output.
	MaxTokens = 300
)

var ErrNoResponse = errors.New("no response from OpenAI")

// Client sends prompts to an OpenAI-compatible chat completion endpoint.
type Client struct {
	api *goopenai.Client
}

// NewClient builds a client for apiKey against baseURL (for example https://api.openai.com/v1/).
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	o := options{httpClient: httpclient.New(httpclient.DefaultTimeout)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{api: goopenai.NewClientWithConfig(newConfig(apiKey, baseURL, o.httpClient))}
}

// Complete sends prompt as a single user message and returns the first choice's text.
// Every failure is returned as a COMPLETION_ERROR carrying the underlying error text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	content, err := c.complete(httpclient.WithProvider(ctx, "OpenAI"), prompt)
	metrics.RecordExternalCall(ctx, "openai", start, err)

	if err != nil {
		slog.WarnContext(ctx, "Completion request failed",
			"error", err,
			"model", Model,
			"duration_ms", time.Since(start).Milliseconds(),
			logger.WithTraceContext(ctx))
		return "", apperrors.NewCompletionError("completion request failed", "COMPLETION_FAILED", err)
	}

	slog.DebugContext(ctx, "Completion received",
		"model", Model,
		"chars", len(content),
		"duration_ms", time.Since(start).Milliseconds())
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoResponse
	}
	return resp.Choices[0].Message.Content, nil
}
