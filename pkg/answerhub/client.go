// Package answerhub provides a client for the hosted answer service used for
// web search and article extraction.
package answerhub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL    = "https://api.perplexity.ai/search"
	defaultMaxResults = 5
)

// Client performs answer queries against the service.
type Client interface {
	Ask(ctx context.Context, query string) (*Answer, error)
}

// Answer is the resolved text for a query. Failure is an error from Ask, not
// a sentinel string inside Text.
type Answer struct {
	Text string
}

// request is the JSON body for the answer endpoint.
type request struct {
	Query string `json:"query"`
}

// response covers both answer shapes: a single "answer" string, or a "data"
// list of items that may carry a "text" field.
type response struct {
	Answer string `json:"answer"`
	Data   []item `json:"data"`
}

type item struct {
	Text string `json:"text"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default endpoint URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithMaxResults caps how many "data" items are concatenated.
func WithMaxResults(n int) Option {
	return func(c *httpClient) {
		c.maxResults = n
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	maxResults int
	http       *http.Client
}

// NewClient creates an answer-service client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		maxResults: defaultMaxResults,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Ask(ctx context.Context, query string) (*Answer, error) {
	body, err := json.Marshal(request{Query: query})
	if err != nil {
		return nil, eris.Wrap(err, "answerhub: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "answerhub: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "answerhub: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "answerhub: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("answerhub: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "answerhub: unmarshal response")
	}

	if result.Answer != "" {
		return &Answer{Text: result.Answer}, nil
	}

	var parts []string
	for i, it := range result.Data {
		if i >= c.maxResults {
			break
		}
		if it.Text != "" {
			parts = append(parts, it.Text)
		}
	}
	return &Answer{Text: strings.Join(parts, "\n")}, nil
}
