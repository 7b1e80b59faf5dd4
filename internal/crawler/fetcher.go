package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/nao1215/pydocscan/internal/database"
)

// Cache stores fetched pages between invocations.
// It is implemented by *database.CrawlDB.
type Cache interface {
	LookupPage(ctx context.Context, url string, maxAge time.Duration) (*database.Page, error)
	StorePage(ctx context.Context, page *database.Page) error
	ClearPages(ctx context.Context) (int64, error)
}

// Fetcher retrieves pages over HTTP.
// It is not safe for concurrent use; pydocscan fetches one page at a time.
type Fetcher struct {
	// client is the resty client on top of the retrying transport.
	client *resty.Client

	// limiter spaces network requests. Cache hits do not consume tokens.
	limiter *rate.Limiter

	// cache is consulted before the network. Nil disables caching.
	cache Cache

	// cacheTTL is the maximum age of a usable cache entry; 0 never expires.
	cacheTTL time.Duration

	// logger receives retry and cache diagnostics.
	logger *slog.Logger

	timeout      time.Duration
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	delay        time.Duration

	stats FetchStats
}

// FetchStats counts how pages were obtained.
type FetchStats struct {
	// Requests is the number of pages fetched from the network.
	Requests int

	// CacheHits is the number of pages served from the cache.
	CacheHits int
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRetryMax sets how many times a failed request is retried.
// Connection errors and 5xx responses are retried; 4xx responses are not.
func WithRetryMax(n int) FetcherOption {
	return func(f *Fetcher) {
		f.retryMax = n
	}
}

// WithRetryWait sets the bounds of the exponential backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.retryWaitMin = minWait
		f.retryWaitMax = maxWait
	}
}

// WithCrawlDelay sets the minimum spacing between network requests.
func WithCrawlDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithCache enables the response cache. Entries older than ttl are
// refetched; a ttl of 0 keeps entries until they are cleared.
func WithCache(cache Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = cache
		f.cacheTTL = ttl
	}
}

// WithLogger sets the logger for retry and cache messages.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher with the given options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		logger:       slog.New(slog.DiscardHandler),
		timeout:      30 * time.Second,
		userAgent:    "pydocscan",
		retryMax:     3,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = f.retryMax
	retryClient.RetryWaitMin = f.retryWaitMin
	retryClient.RetryWaitMax = f.retryWaitMax
	retryClient.HTTPClient.Timeout = f.timeout
	retryClient.Logger = f.logger
	retryClient.ErrorHandler = keepLastResponse

	f.client = resty.NewWithClient(retryClient.StandardClient()).
		SetHeader("User-Agent", f.userAgent)

	f.limiter = rate.NewLimiter(rate.Inf, 0)
	if f.delay > 0 {
		f.limiter = rate.NewLimiter(rate.Every(f.delay), 1)
	}

	return f
}

// Fetch returns the body of pageURL as text.
// The body is decoded as UTF-8 regardless of the charset the server
// advertises; invalid sequences become U+FFFD.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	body, err := f.FetchBytes(ctx, pageURL)
	if err != nil {
		return "", err
	}
	text := string(body)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return text, nil
}

// FetchBytes returns the raw body of pageURL.
// Any transport failure or non-2xx status is returned as a *FetchError.
func (f *Fetcher) FetchBytes(ctx context.Context, pageURL string) ([]byte, error) {
	if page := f.lookup(ctx, pageURL); page != nil {
		return page.Body, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	f.stats.Requests++
	res, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	status := res.StatusCode()
	if status < 200 || status >= 300 {
		return nil, &FetchError{URL: pageURL, StatusCode: status}
	}

	body := res.Body()
	if body == nil {
		body = []byte{}
	}
	f.store(ctx, &database.Page{
		URL:         pageURL,
		StatusCode:  status,
		ContentType: res.Header().Get("Content-Type"),
		Body:        body,
		FetchedAt:   res.ReceivedAt(),
	})
	return body, nil
}

// ClearCache removes every cached page and returns how many were removed.
func (f *Fetcher) ClearCache(ctx context.Context) (int64, error) {
	if f.cache == nil {
		return 0, nil
	}
	return f.cache.ClearPages(ctx)
}

// Stats returns how many pages were fetched from the network and the cache.
func (f *Fetcher) Stats() FetchStats {
	return f.stats
}

// lookup returns the cached page for pageURL, or nil on a miss.
// Cache failures are logged and treated as misses.
func (f *Fetcher) lookup(ctx context.Context, pageURL string) *database.Page {
	if f.cache == nil {
		return nil
	}
	page, err := f.cache.LookupPage(ctx, pageURL, f.cacheTTL)
	if err != nil {
		f.logger.Warn("cache lookup failed", "url", pageURL, "error", err)
		return nil
	}
	if page == nil {
		return nil
	}
	f.stats.CacheHits++
	f.logger.Debug("serving page from cache", "url", pageURL, "fetched_at", page.FetchedAt)
	return page
}

// store saves a fetched page. Failures only cost a future network request.
func (f *Fetcher) store(ctx context.Context, page *database.Page) {
	if f.cache == nil {
		return
	}
	if err := f.cache.StorePage(ctx, page); err != nil {
		f.logger.Warn("failed to cache page", "url", page.URL, "error", err)
	}
}

// keepLastResponse is a retryablehttp.ErrorHandler that returns the last
// response once retries are exhausted, so the status code of a failing
// server reaches FetchError instead of a generic "giving up" error.
func keepLastResponse(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, fmt.Errorf("giving up after %d attempt(s): %w", attempts, err)
}
