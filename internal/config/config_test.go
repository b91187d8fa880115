package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "marketing_content_documents", cfg.Store.Table)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "azure", cfg.LLM.Provider)
	assert.Equal(t, "2024-02-01", cfg.Azure.APIVersion)
	assert.Equal(t, "https://api.perplexity.ai/search", cfg.Answer.URL)
	assert.Equal(t, 5, cfg.Answer.MaxResults)
	assert.Equal(t, "pdftotext", cfg.Extract.PdfToTextPath)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSecs)
	assert.InDelta(t, 2.0, cfg.Fetch.RequestsPerSec, 0.001)
	assert.Equal(t, int64(512*1024), cfg.Fetch.MaxBodyBytes)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
  database_url: file:content.db
log:
  level: debug
  format: console
server:
  port: 9090
answer:
  key: pplx-test
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "file:content.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "pplx-test", cfg.Answer.Key)
	// Defaults still apply for unset values
	assert.Equal(t, 10, cfg.Fetch.TimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CONTENTHUB_STORE_DRIVER", "postgres")
	t.Setenv("CONTENTHUB_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("CONTENTHUB_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func TestValidateGenerate_AllPresent(t *testing.T) {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/content"
	cfg.Azure.Endpoint = "https://example.openai.azure.com"
	cfg.Azure.Key = "azure-key"

	assert.NoError(t, cfg.Validate("generate"))
}

func TestValidateGenerate_MissingEverything(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate("generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
	assert.Contains(t, err.Error(), "azure.endpoint and azure.key are required")
}

func TestValidateGenerate_AnthropicProvider(t *testing.T) {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/content"
	cfg.LLM.Provider = "anthropic"

	err := cfg.Validate("generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.anthropic.key is required")

	cfg.LLM.Anthropic.Key = "sk-ant-key"
	assert.NoError(t, cfg.Validate("generate"))
}

func TestValidateGenerate_UnknownProvider(t *testing.T) {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/content"
	cfg.LLM.Provider = "mistral"

	err := cfg.Validate("generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider must be azure or anthropic")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")

	cfg.Server.Port = 9090
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
