package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Annallisboa/QA-app/internal/prompt"
)

// AnthropicClient calls the Anthropic Messages API through the official SDK.
type AnthropicClient struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// AnthropicOptions configures NewAnthropicClient. Zero values are ignored.
type AnthropicOptions struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
}

// NewAnthropicClient builds a client with SDK retries disabled.
func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &AnthropicClient{
		client:    anthropic.NewClient(reqOpts...),
		model:     anthropic.Model(opts.Model),
		maxTokens: maxTokens,
	}
}

// Complete sends the messages and returns the first text block of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, messages []prompt.Message) (string, error) {
	system, turns := split(messages)

	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range turns {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == prompt.RoleHuman {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Provider: "anthropic", StatusCode: apiErr.StatusCode, Err: err}
		}
		return "", &UpstreamError{Provider: "anthropic", Err: err}
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &UpstreamError{Provider: "anthropic", Err: fmt.Errorf("no text content in response")}
}
