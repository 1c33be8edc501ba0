package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/priorlab/conjugate/internal/errors"
	"github.com/priorlab/conjugate/internal/resilience"
)

const defaultMaxBodyBytes = 8 << 20 // 8 MiB is plenty for an observation CSV

// FetcherConfig configures the HTTP dataset fetcher
type FetcherConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxBodyBytes      int64
	Retry             resilience.RetryConfig
}

// DefaultFetcherConfig returns sensible defaults for ad hoc CSV fetches
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:           15 * time.Second,
		RequestsPerSecond: 2,
		MaxBodyBytes:      defaultMaxBodyBytes,
		Retry:             resilience.DefaultRetryConfig(),
	}
}

// Fetcher retrieves CSV datasets over HTTP with client-side rate limiting
// and retry on transient failures
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
	maxBody int64
}

// NewFetcher creates a fetcher from config
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = resilience.DefaultRetryConfig()
	}

	return &Fetcher{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		retry:   cfg.Retry,
		maxBody: cfg.MaxBodyBytes,
	}
}

// FetchCSV downloads a CSV resource and parses its first column into an
// ordered sample
func (f *Fetcher) FetchCSV(ctx context.Context, url string) ([]float64, error) {
	// Wait fails on context cancellation but also on limiter
	// misconfiguration; classify by cause
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errors.ToAppError(errors.WrapError(err, "dataset fetch rate limit"))
	}

	var body []byte
	err := resilience.RetryWithConfig(ctx, f.retry, func() error {
		data, err := f.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ParseCSV(bytes.NewReader(body))
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewInvalidParameter("invalid dataset url", url)
	}
	req.Header.Set("Accept", "text/csv, text/plain")
	req.Header.Set("User-Agent", "conjugate/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("dataset fetch failed", err)
	}
	defer errors.SafeClose(resp.Body, url)

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("dataset host returned status %d", resp.StatusCode), nil)
	}
	if resp.StatusCode != http.StatusOK {
		// client errors will not heal on retry
		return nil, errors.NewInvalidParameter(
			fmt.Sprintf("dataset host returned status %d", resp.StatusCode), url)
	}

	// read one byte past the cap so an oversized body fails instead of
	// silently truncating the sample
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, errors.NewNetworkError("reading dataset body failed", err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, errors.NewInvalidInput(
			fmt.Sprintf("dataset body exceeds %d byte limit", f.maxBody), url)
	}

	return data, nil
}
