package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Azure   AzureConfig   `yaml:"azure" mapstructure:"azure"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Answer  AnswerConfig  `yaml:"answer" mapstructure:"answer"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the similarity-search backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "postgres" or "sqlite"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
}

// Configured reports whether a store backend is usable.
func (c StoreConfig) Configured() bool {
	return c.DatabaseURL != ""
}

// AzureConfig holds Azure OpenAI credentials and deployments.
type AzureConfig struct {
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"`
	Key             string `yaml:"key" mapstructure:"key"`
	APIVersion      string `yaml:"api_version" mapstructure:"api_version"`
	ChatDeployment  string `yaml:"chat_deployment" mapstructure:"chat_deployment"`
	EmbedDeployment string `yaml:"embeddings_deployment" mapstructure:"embeddings_deployment"`
	EmbedAPIVersion string `yaml:"embeddings_api_version" mapstructure:"embeddings_api_version"`
}

// Configured reports whether the chat service is usable.
func (c AzureConfig) Configured() bool {
	return c.Endpoint != "" && c.Key != ""
}

// LLMConfig selects the generation provider.
type LLMConfig struct {
	Provider  string          `yaml:"provider" mapstructure:"provider"` // "azure" or "anthropic"
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
}

// AnthropicConfig holds Anthropic API settings for the alternative provider.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// AnswerConfig holds answer-service (web search) settings.
type AnswerConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	URL        string `yaml:"url" mapstructure:"url"`
	MaxResults int    `yaml:"max_results" mapstructure:"max_results"`
}

// ExtractConfig configures document text extraction.
type ExtractConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// FetchConfig configures URL fetching.
type FetchConfig struct {
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	MaxBodyBytes   int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the configuration is sufficient for the given mode.
// Mode "generate" covers any generate/refine action; mode "serve" covers the
// HTTP server. Generation requires both the similarity store and a chat
// provider to be configured before any work starts.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "generate":
		if !c.Store.Configured() {
			problems = append(problems, "store.database_url is required")
		}
		switch c.LLM.Provider {
		case "azure", "":
			if !c.Azure.Configured() {
				problems = append(problems, "azure.endpoint and azure.key are required")
			}
		case "anthropic":
			if c.LLM.Anthropic.Key == "" {
				problems = append(problems, "llm.anthropic.key is required")
			}
		default:
			problems = append(problems, "llm.provider must be azure or anthropic")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "index":
		if !c.Store.Configured() {
			problems = append(problems, "store.database_url is required")
		}
		if !c.Azure.Configured() {
			problems = append(problems, "azure.endpoint and azure.key are required for embeddings")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTENTHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.table", "marketing_content_documents")
	v.SetDefault("azure.api_version", "2024-02-01")
	v.SetDefault("azure.chat_deployment", "gpt-4o")
	v.SetDefault("azure.embeddings_deployment", "text-embedding-3-small")
	v.SetDefault("llm.provider", "azure")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("answer.url", "https://api.perplexity.ai/search")
	v.SetDefault("answer.max_results", 5)
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.requests_per_sec", 2)
	v.SetDefault("fetch.max_body_bytes", 512*1024)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
