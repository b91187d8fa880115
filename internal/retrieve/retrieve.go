// Package retrieve resolves the reference context for a generation request
// by walking a strict priority chain: extracted uploads, fetched URLs,
// vector-store similarity search, then a topic web search. The first tier
// that yields non-empty text wins and later tiers are never consulted.
package retrieve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/model"
	"github.com/content-hub/content-hub/internal/vectorstore"
)

// similarityK is how many documents the similarity tier pulls per query.
const similarityK = 20

// Fetcher turns a URL into text. *fetch.Chain satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Searcher answers a free-text topic query. *fetch.TopicSearcher satisfies it.
type Searcher interface {
	Search(ctx context.Context, topic string) (string, error)
}

// Store is the similarity-search surface of the vector store.
type Store interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]vectorstore.Document, error)
}

// Resolver walks the retrieval tiers. Any of its sources may be nil, in
// which case that tier is skipped.
type Resolver struct {
	fetcher  Fetcher
	store    Store
	searcher Searcher
}

func NewResolver(fetcher Fetcher, store Store, searcher Searcher) *Resolver {
	return &Resolver{fetcher: fetcher, store: store, searcher: searcher}
}

// Resolve returns the reference context for a request. uploadTexts holds
// already-extracted upload contents in upload order. Tier failures are
// logged and recovered; an exhausted chain returns an empty context with
// TierNone rather than an error.
func (r *Resolver) Resolve(ctx context.Context, topic string, uploadTexts []string, urls []string) model.ReferenceContext {
	if text := joinTexts(uploadTexts); text != "" {
		return model.ReferenceContext{Text: text, Source: model.TierUploads}
	}

	if text := r.fetchURLs(ctx, urls); text != "" {
		return model.ReferenceContext{Text: text, Source: model.TierURLs}
	}

	if text := r.searchSimilar(ctx, topic); text != "" {
		return model.ReferenceContext{Text: text, Source: model.TierSimilarity}
	}

	if text := r.searchTopic(ctx, topic); text != "" {
		return model.ReferenceContext{Text: text, Source: model.TierWebSearch}
	}

	return model.ReferenceContext{Source: model.TierNone}
}

func (r *Resolver) fetchURLs(ctx context.Context, urls []string) string {
	if r.fetcher == nil || len(urls) == 0 {
		return ""
	}
	texts := make([]string, 0, len(urls))
	for _, url := range urls {
		text, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			zap.L().Warn("url fetch failed, continuing", zap.String("url", url), zap.Error(err))
			continue
		}
		texts = append(texts, text)
	}
	return joinTexts(texts)
}

func (r *Resolver) searchSimilar(ctx context.Context, topic string) string {
	if r.store == nil {
		return ""
	}
	docs, err := r.store.SimilaritySearch(ctx, topic, similarityK)
	if err != nil {
		zap.L().Warn("similarity search failed, continuing", zap.Error(err))
		return ""
	}
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Content != "" {
			texts = append(texts, doc.Content)
			continue
		}
		texts = append(texts, doc.String())
	}
	return joinTexts(texts)
}

func (r *Resolver) searchTopic(ctx context.Context, topic string) string {
	if r.searcher == nil {
		return ""
	}
	text, err := r.searcher.Search(ctx, topic)
	if err != nil {
		zap.L().Warn("topic search failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func joinTexts(texts []string) string {
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
