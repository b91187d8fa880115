package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// LocalFetcher fetches a URL via a direct HTTP GET and returns the raw
// response body verbatim (may include markup; not cleaned). Free, no API
// calls. A rate limiter keeps back-to-back URL lists polite.
type LocalFetcher struct {
	client       *http.Client
	limiter      *rate.Limiter
	maxBodyBytes int64
}

// LocalOptions tunes the LocalFetcher. Zero values fall back to defaults.
type LocalOptions struct {
	Timeout        time.Duration
	RequestsPerSec float64
	MaxBodyBytes   int64
}

// NewLocalFetcher creates a LocalFetcher with bounded timeouts.
func NewLocalFetcher(opts LocalOptions) *LocalFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 512 * 1024
	}
	return &LocalFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

func (l *LocalFetcher) Name() string           { return "local_http" }
func (l *LocalFetcher) Supports(_ string) bool { return true }

// Fetch GETs the URL and returns the body, capped at maxBodyBytes.
func (l *LocalFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "local_http: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "local_http: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ContentHubBot/1.0)")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "local_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("local_http: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "local_http: read body")
	}

	return string(body), nil
}
