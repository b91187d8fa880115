package llm

import (
	"context"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"

	"github.com/content-hub/content-hub/internal/config"
)

// AzureClient implements Client against an Azure OpenAI chat deployment.
type AzureClient struct {
	client     *openai.Client
	deployment string
}

func NewAzureClient(cfg config.AzureConfig) (*AzureClient, error) {
	if !cfg.Configured() {
		return nil, eris.New("llm: azure openai is not configured")
	}
	clientCfg := openai.DefaultAzureConfig(cfg.Key, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.ChatDeployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	return &AzureClient{client: openai.NewClientWithConfig(clientCfg), deployment: deployment}, nil
}

func (c *AzureClient) Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", eris.Wrap(err, "llm: azure chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("llm: azure returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
