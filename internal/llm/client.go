// Package llm sends rendered prompts to a hosted chat-completion model.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Annallisboa/QA-app/internal/prompt"
)

// Temperature is fixed: answers must not be creative.
const Temperature = 0.0

// Client completes a list of role-tagged messages and returns the raw reply.
type Client interface {
	Complete(ctx context.Context, messages []prompt.Message) (string, error)
}

// UpstreamError reports a network, auth or non-2xx failure talking to the
// model endpoint.
type UpstreamError struct {
	Provider   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: upstream request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// split separates the system instruction from the conversation turns.
func split(messages []prompt.Message) (system string, turns []prompt.Message) {
	for _, m := range messages {
		if m.Role == prompt.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}

type loggingClient struct {
	next   Client
	logger *slog.Logger
}

// WithLogging logs every request and reply at debug level.
func WithLogging(c Client, logger *slog.Logger) Client {
	if logger == nil {
		return c
	}
	return &loggingClient{next: c, logger: logger}
}

func (c *loggingClient) Complete(ctx context.Context, messages []prompt.Message) (string, error) {
	for _, m := range messages {
		c.logger.DebugContext(ctx, "model request", "role", m.Role, "content", m.Content)
	}

	start := time.Now()
	reply, err := c.next.Complete(ctx, messages)
	if err != nil {
		c.logger.DebugContext(ctx, "model call failed", "duration", time.Since(start), "error", err)
		return reply, err
	}
	c.logger.DebugContext(ctx, "model reply", "duration", time.Since(start), "content", reply)
	return reply, nil
}
