package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/config"
	"github.com/content-hub/content-hub/internal/extract"
	"github.com/content-hub/content-hub/internal/fetch"
	"github.com/content-hub/content-hub/internal/llm"
	"github.com/content-hub/content-hub/internal/retrieve"
	"github.com/content-hub/content-hub/internal/session"
	"github.com/content-hub/content-hub/internal/vectorstore"
	"github.com/content-hub/content-hub/pkg/answerhub"
)

// services holds the wired pipeline dependencies for a command.
type services struct {
	Extractor *extract.Extractor
	Resolver  *retrieve.Resolver
	Service   *session.Service
	Store     vectorstore.Store
}

func (s *services) Close() {
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			zap.L().Warn("store close failed", zap.Error(err))
		}
	}
}

// buildServices wires the retrieval chain, vector store, and generation
// client from config. The vector store and answer service are optional;
// their retrieval tiers are skipped when unconfigured.
func buildServices(ctx context.Context, cfg *config.Config) (*services, error) {
	var answerClient answerhub.Client
	if cfg.Answer.Key != "" {
		answerClient = answerhub.NewClient(cfg.Answer.Key,
			answerhub.WithBaseURL(cfg.Answer.URL),
			answerhub.WithMaxResults(cfg.Answer.MaxResults),
		)
	}

	chain := fetch.NewChain(
		fetch.NewAnswerFetcher(answerClient),
		fetch.NewLocalFetcher(fetch.LocalOptions{
			Timeout:        time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			RequestsPerSec: cfg.Fetch.RequestsPerSec,
			MaxBodyBytes:   cfg.Fetch.MaxBodyBytes,
		}),
	)

	var store vectorstore.Store
	if cfg.Store.Configured() && cfg.Azure.Configured() {
		embedder, err := vectorstore.NewAzureEmbedder(cfg.Azure)
		if err != nil {
			return nil, err
		}
		store, err = vectorstore.Open(ctx, cfg.Store, embedder)
		if err != nil {
			return nil, err
		}
	} else {
		zap.L().Warn("vector store not configured, similarity tier disabled")
	}

	// A missing chat provider disables generation per action rather than
	// failing startup; the CLI modes validate config up front instead.
	var generator session.Generator
	client, err := llm.NewClient(cfg.LLM, cfg.Azure)
	if err != nil {
		zap.L().Warn("chat provider not configured, generation disabled", zap.Error(err))
	} else {
		generator = llm.NewGenerator(client)
	}

	extractor := extract.New(cfg.Extract.PdfToTextPath)
	resolver := retrieve.NewResolver(chain, storeOrNil(store), fetch.NewTopicSearcher(answerClient))
	svc := session.NewService(extractor, resolver, generator, store != nil)

	return &services{
		Extractor: extractor,
		Resolver:  resolver,
		Service:   svc,
		Store:     store,
	}, nil
}

// storeOrNil keeps a nil Store from becoming a non-nil interface.
func storeOrNil(store vectorstore.Store) retrieve.Store {
	if store == nil {
		return nil
	}
	return store
}
