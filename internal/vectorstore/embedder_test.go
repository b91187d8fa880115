package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/content-hub/content-hub/internal/config"
)

func azureTestConfig(endpoint string) config.AzureConfig {
	return config.AzureConfig{
		Endpoint:        endpoint,
		Key:             "test-key",
		APIVersion:      "2024-02-01",
		ChatDeployment:  "gpt-4o",
		EmbedDeployment: "text-embedding-3-small",
	}
}

func TestAzureEmbedder_Embed(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := map[string]any{"data": []map[string]any{}}
		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]any{"index": i, "embedding": []float32{float32(i), 1}}
		}
		resp["data"] = data
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(azureTestConfig(srv.URL))
	require.NoError(t, err)

	vecs, err := e.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{0, 1}, vecs[0])
	assert.Equal(t, []float32{1, 1}, vecs[1])
	assert.Contains(t, gotPath, "text-embedding-3-small")
}

func TestAzureEmbedder_Embed_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"deployment not found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	e, err := NewAzureEmbedder(azureTestConfig(srv.URL))
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create embeddings")
}

func TestAzureEmbedder_Embed_NoInput(t *testing.T) {
	e, err := NewAzureEmbedder(azureTestConfig("https://example.openai.azure.com"))
	require.NoError(t, err)

	vecs, err := e.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestNewAzureEmbedder_Unconfigured(t *testing.T) {
	_, err := NewAzureEmbedder(config.AzureConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mysql", DatabaseURL: "x", Table: "t"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}
