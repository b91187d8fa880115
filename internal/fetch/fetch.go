// Package fetch resolves a URL (or general query) to readable text. Fetchers
// are tried in priority order: answer-service extraction first, raw HTTP GET
// as the fallback.
package fetch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fetcher fetches a single URL and returns its best-effort readable text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Name() string
	Supports(url string) bool
}

// Chain tries fetchers in priority order, returning the first success.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in order; the first
// non-empty result is returned.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Fetch tries each fetcher in order for a single URL.
// Returns the first successful result, or an error if all fail.
func (c *Chain) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for _, f := range c.fetchers {
		if !f.Supports(url) {
			continue
		}
		text, err := f.Fetch(ctx, url)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			zap.L().Debug("fetch: fetcher failed, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", url),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	if lastErr != nil {
		return "", eris.Wrap(lastErr, "fetch: all fetchers failed")
	}
	return "", eris.Errorf("fetch: no suitable fetcher for url: %s", url)
}
