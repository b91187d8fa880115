// Package vectorstore provides the similarity-search backend used by the
// retrieval chain's third tier, with postgres and sqlite implementations.
package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/content-hub/content-hub/internal/config"
)

// Document is one stored reference document with its embedding.
type Document struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Embedding []float32         `json:"-"`
}

// String is the generic fallback form used when a payload lacks text.
func (d Document) String() string {
	if d.Content != "" {
		return d.Content
	}
	if len(d.Metadata) == 0 {
		return fmt.Sprintf("document %s", d.ID)
	}
	parts := make([]string, 0, len(d.Metadata))
	for k, v := range d.Metadata {
		parts = append(parts, k+"="+v)
	}
	return fmt.Sprintf("document %s (%s)", d.ID, strings.Join(parts, " "))
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store defines the persistence interface for similarity search.
type Store interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)
	AddDocuments(ctx context.Context, docs []Document) error
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store from config.
func Open(ctx context.Context, cfg config.StoreConfig, embedder Embedder) (Store, error) {
	switch cfg.Driver {
	case "postgres", "":
		return NewPostgres(ctx, cfg.DatabaseURL, cfg.Table, embedder)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL, cfg.Table, embedder)
	default:
		return nil, eris.Errorf("vectorstore: unknown driver %q", cfg.Driver)
	}
}
