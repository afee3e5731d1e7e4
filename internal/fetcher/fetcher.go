// Package fetcher is the I/O collaborator: it downloads pages and
// hands parsed documents to the extraction engine. The engine itself
// never performs network access.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/watchfolio/aristohk-scraper/internal/ratelimit"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var ErrFetchFailed = errors.New("fetch failed after retries")

type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
}

// Fetcher downloads pages with retries, exponential backoff and a
// politeness delay between requests.
type Fetcher struct {
	client     *http.Client
	limiter    ratelimit.RateLimiter
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

func New(opts Options, limiter ratelimit.RateLimiter, logger *slog.Logger) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseDelay == 0 {
		opts.BaseDelay = time.Second
	}

	return &Fetcher{
		client:     &http.Client{Timeout: opts.Timeout},
		limiter:    limiter,
		userAgent:  opts.UserAgent,
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
		logger:     logger.With("component", "fetcher"),
	}
}

// GetDocument fetches a URL and parses the response body. Transport
// and HTTP-status failures are retried with exponential backoff; the
// last error is wrapped in ErrFetchFailed.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := f.baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		doc, err := f.get(ctx, url)
		if err == nil {
			return doc, nil
		}

		lastErr = err
		f.logger.Warn("fetch attempt failed",
			"url", url, "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, url, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
