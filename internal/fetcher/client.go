package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/codecollector/internal/cache"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// Ensure Client implements domain.Fetcher
var _ domain.Fetcher = (*Client)(nil)

// Client downloads archives over plain net/http or, in stealth mode,
// over tls-client with a browser TLS fingerprint.
type Client struct {
	transport    transport
	userAgent    string
	retrier      *Retrier
	maxBodySize  int64
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
	logger       *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration // initial backoff interval, defaults to 1s
	EnableCache   bool
	CacheTTL      time.Duration
	Cache         domain.Cache
	UserAgent     string
	Stealth       bool
	MaxBodySize   int64 // 0 means unlimited
	HTTPClient    *http.Client
	Logger        *utils.Logger
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     90 * time.Second,
		MaxRetries:  2,
		EnableCache: true,
		CacheTTL:    24 * time.Hour,
		MaxBodySize: 200 * 1024 * 1024,
	}
}

// transport performs a single GET and hands back the raw response parts
type transport interface {
	do(ctx context.Context, targetURL string, headers map[string]string) (*rawResponse, error)
}

type rawResponse struct {
	statusCode int
	header     http.Header
	body       io.ReadCloser
}

// NewClient creates a new archive fetcher
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 90 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	var t transport
	if opts.Stealth {
		st, err := newStealthTransport(opts.Timeout)
		if err != nil {
			return nil, err
		}
		t = st
	} else {
		hc := opts.HTTPClient
		if hc == nil {
			hc = &http.Client{Timeout: opts.Timeout}
		}
		t = &stdTransport{client: hc}
	}

	retryOpts := DefaultRetrierOptions()
	retryOpts.MaxRetries = opts.MaxRetries
	if opts.RetryInterval > 0 {
		retryOpts.InitialInterval = opts.RetryInterval
	}
	retrier := NewRetrier(retryOpts)

	return &Client{
		transport:    t,
		userAgent:    opts.UserAgent,
		retrier:      retrier,
		maxBodySize:  opts.MaxBodySize,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
		logger:       opts.Logger.WithComponent("fetcher"),
	}, nil
}

// Get fetches a URL. Any HTTP status yields a response; only transport
// failures and oversized bodies are returned as errors. Retryable statuses
// are retried and the last response is returned once retries run out.
func (c *Client) Get(ctx context.Context, targetURL string) (*domain.Response, error) {
	if c.cacheEnabled && c.cache != nil {
		if cached, err := c.getFromCache(ctx, targetURL); err == nil {
			c.logger.Debug().Str("url", targetURL).Msg("Cache hit")
			return cached, nil
		}
	}

	var last *domain.Response
	err := c.retrier.Retry(ctx, func() error {
		resp, err := c.doRequest(ctx, targetURL)
		if err != nil {
			return err
		}
		last = resp
		if ShouldRetryStatus(resp.StatusCode) {
			c.logger.Debug().
				Str("url", targetURL).
				Int("status", resp.StatusCode).
				Msg("Retryable status")
			return &domain.RetryableError{
				Err:        statusError(targetURL, resp.StatusCode),
				RetryAfter: int(ParseRetryAfter(resp.Headers.Get("Retry-After")).Seconds()),
			}
		}
		return nil
	})

	if err != nil {
		if last != nil && ShouldRetryStatus(last.StatusCode) && ctx.Err() == nil {
			return last, nil
		}
		return nil, err
	}

	if c.cacheEnabled && c.cache != nil && cacheable(last) {
		if err := c.cache.Set(ctx, cache.ArchiveKey(targetURL), last.Body, c.cacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("url", targetURL).Msg("Failed to cache response")
		}
	}

	return last, nil
}

func (c *Client) doRequest(ctx context.Context, targetURL string) (*domain.Response, error) {
	raw, err := c.transport.do(ctx, targetURL, StealthHeaders(c.userAgent))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if isTimeout(err) {
			return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("%w: %v", domain.ErrTimeout, err))
		}
		return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer raw.body.Close()

	body, err := c.readBody(raw.body)
	if err != nil {
		return nil, domain.NewFetchError(targetURL, raw.statusCode, err)
	}

	return &domain.Response{
		StatusCode:  raw.statusCode,
		Body:        body,
		Headers:     raw.header,
		ContentType: raw.header.Get("Content-Type"),
		URL:         targetURL,
	}, nil
}

// statusError describes a retryable status. 429 is reported as rate limiting.
func statusError(targetURL string, status int) error {
	if status == http.StatusTooManyRequests {
		return domain.NewFetchError(targetURL, status, domain.ErrRateLimited)
	}
	return domain.NewFetchError(targetURL, status, fmt.Errorf("HTTP %d", status))
}

// isTimeout reports a transport timeout anywhere in the chain
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	if c.maxBodySize <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("body exceeds %d bytes: %w", c.maxBodySize, domain.ErrTooLarge)
	}
	return body, nil
}

// Close releases client resources
func (c *Client) Close() error {
	return nil
}

func (c *Client) getFromCache(ctx context.Context, targetURL string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, cache.ArchiveKey(targetURL))
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        data,
		Headers:     http.Header{},
		ContentType: "application/zip",
		URL:         targetURL,
		FromCache:   true,
	}, nil
}

// cacheable reports whether a response is a successful non-HTML payload
func cacheable(resp *domain.Response) bool {
	return resp != nil && resp.OK() && !IsHTML(resp)
}

// SetCacheEnabled enables or disables caching
func (c *Client) SetCacheEnabled(enabled bool) {
	c.cacheEnabled = enabled
}

type stdTransport struct {
	client *http.Client
}

func (t *stdTransport) do(ctx context.Context, targetURL string, headers map[string]string) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	return &rawResponse{statusCode: resp.StatusCode, header: resp.Header, body: resp.Body}, nil
}

type stealthTransport struct {
	client tls_client.HttpClient
}

func newStealthTransport(timeout time.Duration) (*stealthTransport, error) {
	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithRandomTLSExtensionOrder(),
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}
	return &stealthTransport{client: client}, nil
}

func (t *stealthTransport) do(ctx context.Context, targetURL string, headers map[string]string) (*rawResponse, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}

	header := make(http.Header, len(resp.Header))
	for k, v := range resp.Header {
		header[k] = v
	}
	return &rawResponse{statusCode: resp.StatusCode, header: header, body: resp.Body}, nil
}

// IsHTML reports whether a response declares an HTML content type
func IsHTML(resp *domain.Response) bool {
	if resp == nil {
		return false
	}
	return strings.Contains(strings.ToLower(resp.ContentType), "text/html")
}
