package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/content-hub/content-hub/pkg/answerhub"
)

// answerTimeout bounds the article-extraction call so a slow answer service
// cannot hang the interactive flow.
const answerTimeout = 20 * time.Second

// AnswerFetcher extracts main article content from a URL via the answer
// service. It is skipped entirely when no credential is configured.
type AnswerFetcher struct {
	client answerhub.Client
}

// NewAnswerFetcher wraps an answer-service client as a Fetcher. A nil client
// means no credential is configured and Supports always returns false.
func NewAnswerFetcher(client answerhub.Client) *AnswerFetcher {
	return &AnswerFetcher{client: client}
}

func (a *AnswerFetcher) Name() string { return "answer_service" }

func (a *AnswerFetcher) Supports(_ string) bool { return a.client != nil }

// Fetch asks the answer service for the readable article content of the URL.
func (a *AnswerFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if a.client == nil {
		return "", eris.New("answer_service: not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	ans, err := a.client.Ask(ctx, "Extract main article content from: "+url)
	if err != nil {
		return "", eris.Wrap(err, "answer_service: extract url")
	}
	if strings.TrimSpace(ans.Text) == "" {
		return "", eris.New("answer_service: empty extraction")
	}
	return ans.Text, nil
}

// TopicSearcher runs free-form queries against the answer service. It is the
// retrieval chain's last-resort tier.
type TopicSearcher struct {
	client answerhub.Client
}

// NewTopicSearcher creates a TopicSearcher. A nil client is valid and yields
// empty results.
func NewTopicSearcher(client answerhub.Client) *TopicSearcher {
	return &TopicSearcher{client: client}
}

// Search resolves a topic query to answer text. Returns an empty string
// (no error) when no credential is configured.
func (s *TopicSearcher) Search(ctx context.Context, query string) (string, error) {
	if s.client == nil {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	ans, err := s.client.Ask(ctx, query)
	if err != nil {
		return "", eris.Wrap(err, "topic_search: query")
	}
	return ans.Text, nil
}
