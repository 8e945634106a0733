package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"PaperHarvest/internal/ports"
)

const (
	userAgent      = "Mozilla/5.0 (compatible; PaperHarvest/1.0)"
	acceptLanguage = "en-US,en;q=0.9"

	defaultRetries = 3
	defaultDelay   = 2 * time.Second
	requestTimeout = 20 * time.Second
)

// Fetcher issues GET requests with a fixed header set and retries failures
// with a linearly growing delay between attempts.
type Fetcher struct {
	client  *http.Client
	retries int
	delay   time.Duration
	logger  *slog.Logger
}

var _ ports.PageFetcher = (*Fetcher)(nil)

// Option adjusts fetcher behavior; mostly useful in tests.
type Option func(*Fetcher)

// WithClient swaps the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithRetries sets the total attempt count.
func WithRetries(n int) Option {
	return func(f *Fetcher) { f.retries = n }
}

// WithDelay sets the base delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.delay = d }
}

// New builds a fetcher with a 20s request timeout, 3 attempts and a 2s base delay.
func New(logger *slog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: requestTimeout},
		retries: defaultRetries,
		delay:   defaultDelay,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.retries < 1 {
		f.retries = 1
	}
	return f
}

// Fetch returns the body of url, retrying transport failures and non-2xx
// statuses. The delay before attempt n+1 is delay*n. After exhausting all
// attempts it fails with a terminal error naming the URL and attempt count.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		body, err := f.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		f.warn("fetch attempt failed", "url", url, "attempt", attempt, "retries", f.retries, "error", err)

		if attempt < f.retries {
			if err := sleep(ctx, f.delay*time.Duration(attempt)); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("failed to fetch %s after %d attempts: %w", url, f.retries, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
