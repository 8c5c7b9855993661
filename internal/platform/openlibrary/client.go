package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://openlibrary.org"
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "olreader/1.0 (+https://github.com/olreader/olreader)"

	defaultSearchLimit = 100
	maxErrorBody       = 4096
)

// Doer is the HTTP capability the client needs. *http.Client satisfies it;
// tests pass a fake.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	HTTPClient  Doer
	BaseURL     string
	CoversURL   string
	UserAgent   string
	Timeout     time.Duration
	RPS         float64
	SearchLimit int
}

// Client talks to the Open Library catalog and normalises its responses.
// Every call is a single attempt.
type Client struct {
	httpClient  Doer
	baseURL     string
	coversURL   string
	userAgent   string
	timeout     time.Duration
	limiter     *rate.Limiter
	searchLimit int
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CoversURL == "" {
		opts.CoversURL = DefaultCoversURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}

	return &Client{
		httpClient:  opts.HTTPClient,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		coversURL:   strings.TrimRight(opts.CoversURL, "/"),
		userAgent:   opts.UserAgent,
		timeout:     opts.Timeout,
		limiter:     limiter,
		searchLimit: opts.SearchLimit,
	}
}

// CoversURL returns the cover CDN host the client synthesises URLs against.
func (c *Client) CoversURL() string {
	return c.coversURL
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) normalizer() normalizer {
	return normalizer{baseURL: c.baseURL, coversURL: c.coversURL}
}

// recordURL is the human-readable catalog page for a record.
func (c *Client) recordURL(id string, kind RecordKind) string {
	return c.baseURL + "/" + kind.pathSegment() + "/" + id
}

// get performs one GET and decodes the JSON body into target.
func (c *Client) get(ctx context.Context, op, u string, target any) error {
	body, err := c.rawGet(ctx, op, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return malformed(op, u, "decode: %w", err)
	}
	return nil
}

func (c *Client) rawGet(ctx context.Context, op, u string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Op: op, URL: u, Kind: ErrUpstreamUnavailable, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, validationError(op, "build request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, URL: u, Kind: ErrUpstreamUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &Error{Op: op, URL: u, Status: resp.StatusCode, Kind: ErrRecordNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Op:     op,
			URL:    u,
			Status: resp.StatusCode,
			Kind:   ErrUpstreamUnavailable,
			Err:    fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(b))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, URL: u, Kind: ErrUpstreamUnavailable, Err: err}
	}
	return body, nil
}
