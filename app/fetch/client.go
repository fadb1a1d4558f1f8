package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is the subset of the response repository the client needs
type Cache interface {
	GetResponse(ctx context.Context, key string) ([]byte, bool, error)
	SetResponse(ctx context.Context, key, url string, body []byte, ttl time.Duration) error
}

type Options struct {
	Timeout   time.Duration
	TTL       time.Duration
	UserAgent string
}

// Client issues GET requests against third-party providers, serving repeats
// from the response cache until they expire.
type Client struct {
	httpClient *http.Client
	cache      Cache
	timeout    time.Duration
	ttl        time.Duration
	userAgent  string
	group      singleflight.Group
}

// NewClient wires an HTTP client and an optional cache (nil disables caching)
func NewClient(httpClient *http.Client, cache Cache, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		cache:      cache,
		timeout:    opts.Timeout,
		ttl:        opts.TTL,
		userAgent:  opts.UserAgent,
	}
}

// GetJSON fetches rawURL with params and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	body, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{URL: rawURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// Get fetches rawURL with params merged into its query string and returns the raw body.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	fullURL, err := BuildURL(rawURL, params)
	if err != nil {
		return nil, &ProviderError{URL: rawURL, Err: err}
	}
	key := CacheKey(fullURL)

	if body, hit := c.lookup(ctx, key); hit {
		slog.Debug("Cache hit", "url", fullURL)
		return body, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		body, err := c.fetch(ctx, fullURL)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, fullURL, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Cache miss", "url", fullURL, "shared", shared)
	return v.([]byte), nil
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil || c.ttl <= 0 {
		return nil, false
	}

	body, hit, err := c.cache.GetResponse(ctx, key)
	if err != nil {
		slog.Warn("Cache read failed", "key", key, "error", err)
		return nil, false
	}
	return body, hit
}

func (c *Client) store(ctx context.Context, key, fullURL string, body []byte) {
	if c.cache == nil || c.ttl <= 0 {
		return
	}

	if err := c.cache.SetResponse(ctx, key, fullURL, body, c.ttl); err != nil {
		slog.Warn("Cache write failed", "url", fullURL, "error", err)
	}
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &ProviderError{URL: fullURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{URL: fullURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("HTTP error: %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{URL: fullURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return data, nil
}

// BuildURL merges params into rawURL's existing query.
func BuildURL(rawURL string, params url.Values) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	if len(params) == 0 {
		return parsed.String(), nil
	}

	query := parsed.Query()
	for k, values := range params {
		for _, v := range values {
			query.Add(k, v)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// CacheKey derives the cache key for a fully built URL.
func CacheKey(fullURL string) string {
	hash := sha256.Sum256([]byte(fullURL))
	return hex.EncodeToString(hash[:])
}
