package llm

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/content-hub/content-hub/internal/config"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicClient implements Client using the official anthropic-sdk-go.
// The prompt travels as a system block with a minimal user turn, and the
// first text content block is the completion.
type AnthropicClient struct {
	client sdk.Client
	model  string
}

func NewAnthropicClient(cfg config.AnthropicConfig, opts ...option.RequestOption) (*AnthropicClient, error) {
	if cfg.Key == "" {
		return nil, eris.New("llm: anthropic api key is not configured")
	}
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(cfg.Key)}, opts...)
	return &AnthropicClient{client: sdk.NewClient(opts...), model: model}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: int64(opts.MaxTokens),
		System: []sdk.TextBlockParam{
			{Text: prompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock("Produce the requested content now.")),
		},
		Temperature: sdk.Float(float64(opts.Temperature)),
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: anthropic create message")
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", eris.New("llm: anthropic returned no text content")
}
