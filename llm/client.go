// LLMClient - single-shot completion over a Provider.

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Client wraps a Provider with a bounded-time, single-shot interface.
type Client struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewClient creates a client. A zero timeout means the caller's context is
// the only bound.
func NewClient(provider Provider, timeout time.Duration) *Client {
	return &Client{provider: provider, timeout: timeout, logger: slog.Default()}
}

// WithLogger sets the logger for per-call usage lines.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Complete sends one system and one user message and returns the reply text.
// An empty reply is an error. A reply cut off at the token limit is
// returned with a warning; the parser decides whether it is usable.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]ChatMessage, 0, 2)
	if system != "" {
		messages = append(messages, SystemMessage(system))
	}
	messages = append(messages, UserMessage(user))

	started := time.Now()
	response, err := c.provider.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.provider.Name(), err)
	}
	if strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("%s: empty response", c.provider.Name())
	}

	attrs := []any{
		"provider", c.provider.Name(),
		"model", c.provider.Model(),
		"elapsed", time.Since(started).Round(time.Millisecond),
	}
	if u := response.Usage; u != nil {
		attrs = append(attrs, "tokens.prompt", u.PromptTokens, "tokens.completion", u.CompletionTokens)
	}
	if response.Truncated {
		c.logger.Warn("completion hit the output token limit", attrs...)
	} else {
		c.logger.Info("completion received", attrs...)
	}
	return response.Content, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
