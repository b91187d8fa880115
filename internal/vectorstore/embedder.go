package vectorstore

import (
	"context"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"

	"github.com/content-hub/content-hub/internal/config"
)

// AzureEmbedder implements Embedder against an Azure OpenAI embedding
// deployment.
type AzureEmbedder struct {
	client     *openai.Client
	deployment string
}

// NewAzureEmbedder builds an embedder from Azure OpenAI settings.
func NewAzureEmbedder(cfg config.AzureConfig) (*AzureEmbedder, error) {
	if !cfg.Configured() {
		return nil, eris.New("embedder: azure openai is not configured")
	}
	clientCfg := openai.DefaultAzureConfig(cfg.Key, cfg.Endpoint)
	if cfg.EmbedAPIVersion != "" {
		clientCfg.APIVersion = cfg.EmbedAPIVersion
	} else if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.EmbedDeployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	return &AzureEmbedder{client: openai.NewClientWithConfig(clientCfg), deployment: deployment}, nil
}

func (e *AzureEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.deployment),
	})
	if err != nil {
		return nil, eris.Wrap(err, "embedder: create embeddings")
	}
	if len(resp.Data) != len(texts) {
		return nil, eris.Errorf("embedder: got %d embeddings for %d inputs", len(resp.Data), len(texts))
	}
	vecs := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vecs) {
			return nil, eris.Errorf("embedder: embedding index %d out of range", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}
