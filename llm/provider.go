// Package llm generates post drafts through hosted language models.
//
// Information Hiding:
// - Vendor SDKs, authentication and endpoints behind Provider
// - System prompt placement per vendor
// - Stop-reason mapping to a single Truncated flag

package llm

import (
	"context"
)

// Provider is one hosted model. Implementations are single-shot: Chat sends
// the messages and returns one completion, with no retries.
type Provider interface {
	// Name is the vendor name used in logs and errors.
	Name() string

	// Model is the model id requests are sent to.
	Model() string

	// Chat sends messages and returns the completion.
	Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error)
}
