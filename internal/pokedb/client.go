// Package pokedb fetches and parses the pokemondb.net catalog. It provides
// the catalog listing used to build the draft index and the evolution data
// behind the relation check.
package pokedb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dyluth/dexteam/pkg/dex"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL       = "https://pokemondb.net"
	DefaultCatalogPath   = "/pokedex/all"
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.11 (KHTML, like Gecko) Chrome/23.0.1271.64 Safari/537.11"
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryInterval = 500 * time.Millisecond

	maxBodyBytes = 16 << 20
)

// Options configures a Client. Zero values use the defaults above, except
// MaxRetries where zero means a single try.
type Options struct {
	BaseURL       string
	CatalogPath   string
	UserAgent     string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

// Client talks to the catalog site.
type Client struct {
	httpClient *http.Client
	base       *url.URL
	opts       Options
	logger     *zap.Logger
}

// NewClient creates a client. Returns an error if the base URL is not absolute.
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CatalogPath == "" {
		opts.CatalogPath = DefaultCatalogPath
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0, got %d", opts.MaxRetries)
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute, got %q", opts.BaseURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		base:       base,
		opts:       opts,
		logger:     logger,
	}, nil
}

// URL resolves a site-relative path such as an entity's Href.
func (c *Client) URL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.base.String() + path
	}
	return c.base.ResolveReference(ref).String()
}

// BaseURL returns the site root the client fetches from.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FetchCatalog downloads the catalog listing and returns its dual-typed entries.
func (c *Client) FetchCatalog(ctx context.Context) ([]dex.Entity, error) {
	body, err := c.get(ctx, c.URL(c.opts.CatalogPath))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	entities, skipped, err := ParseCatalog(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.Info("Catalog fetched",
		zap.Int("dual_typed", len(entities)),
		zap.Int("skipped", skipped))
	return entities, nil
}

// RelatedIDs fetches the entity's detail page and returns the numbers in its
// evolution chains. It satisfies draft.RelationOracle.
func (c *Client) RelatedIDs(ctx context.Context, e dex.Entity) (map[int]struct{}, error) {
	if e.Href == "" {
		return nil, fmt.Errorf("entity %s (#%d) has no detail page", e.Name, e.Number)
	}

	body, err := c.get(ctx, c.URL(e.Href))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail page for %s: %w", e.Name, err)
	}

	related, err := ParseEvolutions(bytes.NewReader(body), e.Number)
	if err != nil {
		return nil, fmt.Errorf("detail page for %s: %w", e.Name, err)
	}

	c.logger.Debug("Relations fetched",
		zap.Int("number", e.Number),
		zap.Int("related", len(related)))
	return related, nil
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

// retryable reports whether a request may succeed if repeated.
func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// get fetches a URL with exponential backoff. Client errors other than 429
// are not retried.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	var body []byte
	tries := 0

	operation := func() error {
		tries++
		data, err := c.getOnce(ctx, target)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.retryable() {
				return backoff.Permanent(err)
			}
			c.logger.Debug("Request failed",
				zap.String("url", target),
				zap.Int("try", tries),
				zap.Error(err))
			return err
		}
		body = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.RetryInterval
	policy.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.opts.MaxRetries)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) getOnce(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", target, err)
	}
	return data, nil
}
