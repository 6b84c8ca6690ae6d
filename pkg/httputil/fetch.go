package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/workflowgraph/pkg/buildinfo"
	"github.com/matzehuels/workflowgraph/pkg/cache"
	"github.com/matzehuels/workflowgraph/pkg/errors"
)

// DefaultTTL is how long fetched documents stay cached.
const DefaultTTL = 5 * time.Minute

// maxBodySize bounds a fetched document.
const maxBodySize = 32 << 20

// Fetcher downloads graph documents over HTTP with retries and an optional
// response cache.
type Fetcher struct {
	Client   *http.Client
	Cache    cache.Cache // nil disables caching
	TTL      time.Duration
	Attempts int
	Delay    time.Duration
	Logger   *log.Logger // nil discards cache warnings
}

// NewFetcher returns a Fetcher with a 30 second client timeout, three
// attempts starting at a one second backoff, and DefaultTTL caching in c.
func NewFetcher(c cache.Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		TTL:      DefaultTTL,
		Attempts: 3,
		Delay:    time.Second,
	}
}

// IsURL reports whether s names an http(s) resource rather than a file.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get fetches url and returns the response body.
//
// Network errors, 429 and 5xx responses are retried. A 404 is a NOT_FOUND
// error and any other non-2xx status is INVALID_INPUT. Successful bodies are
// cached under "http:<url>" when a cache is configured; cache failures are
// logged and only cost a refetch.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	key := "http:" + url
	if f.Cache != nil {
		data, hit, err := f.Cache.Get(ctx, key)
		if err != nil {
			f.logger().Warn("cache read failed", "url", url, "error", err)
		} else if hit {
			return data, nil
		}
	}

	var body []byte
	err := cache.Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.do(ctx, url)
		return err
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", url)
	}

	if f.Cache != nil {
		if err := f.Cache.Set(ctx, key, body, f.TTL); err != nil {
			f.logger().Warn("cache write failed", "url", url, "error", err)
		}
	}
	return body, nil
}

func (f *Fetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.New(io.Discard)
	}
	return f.Logger
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "workflowgraph/"+buildinfo.Version)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("GET %s: %s", url, resp.Status))
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "GET %s: not found", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.New(errors.ErrCodeInvalidInput, "GET %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(err)
	}
	if len(data) > maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "GET %s: document larger than %d bytes", url, maxBodySize)
	}
	return data, nil
}
