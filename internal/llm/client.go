// Package llm talks to the chat-completion backends that produce and refine
// content. Prompts are sent as a single system-role message and the first
// choice comes back verbatim; retry policy is left to the caller.
package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/content-hub/content-hub/internal/config"
)

// CompleteOptions bound a single completion call.
type CompleteOptions struct {
	MaxTokens   int
	Temperature float32
}

// Client is a chat-completion backend.
type Client interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// NewClient builds the configured provider. An empty provider selects Azure.
func NewClient(cfg config.LLMConfig, azure config.AzureConfig) (Client, error) {
	switch cfg.Provider {
	case "azure", "":
		return NewAzureClient(azure)
	case "anthropic":
		return NewAnthropicClient(cfg.Anthropic)
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
