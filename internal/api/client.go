// Package api provides the HTTP client that fetches JSON bodies and
// parses them into tagged envelopes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LavishGent/larder/internal/config"
	"github.com/LavishGent/larder/internal/types"
	"github.com/LavishGent/larder/pkg/outcome"
)

// DefaultRequestTimeout bounds requests when the configuration does
// not set a timeout.
const DefaultRequestTimeout = 10 * time.Second

// Client issues requests against a single configured host and parses
// JSON response bodies into envelopes. The zero value is not usable;
// construct with NewClient.
type Client struct {
	config     config.APIConfig
	policy     CachePolicy
	httpClient *http.Client
	logger     *slog.Logger
	metrics    types.MetricsRecorder
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying transport, e.g. with an
// httptest server client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With("component", "api-client")
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(metrics types.MetricsRecorder) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient builds a Client for the configured scheme, host and
// optional port. The cache policy string is parsed here; unknown
// values degrade to the protocol default.
func NewClient(cfg config.APIConfig, opts ...ClientOption) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("api.host is required")
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return nil, fmt.Errorf("api.scheme must be http or https")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}

	c := &Client{
		config: cfg,
		policy: ParsePolicy(cfg.CachePolicy),
		logger: slog.Default().With("component", "api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return c, nil
}

// Policy returns the parsed cache policy the client applies to its
// requests.
func (c *Client) Policy() CachePolicy {
	return c.policy
}

// Request issues a single GET or POST against the configured host and
// parses the response body. GET draws query parameters from the
// endpoint; POST sends the raw body and applies no query. There is
// exactly one attempt, bounded by the configured timeout. Transport
// failures surface as-is in the failure variant.
func (c *Client) Request(ctx context.Context, ep Endpoint, method string, body []byte) outcome.Outcome[Envelope] {
	start := time.Now()

	switch method {
	case http.MethodGet, http.MethodPost:
	default:
		return outcome.Err[Envelope](fmt.Errorf("%w: unsupported method %q", types.ErrInvalidURL, method))
	}

	target, err := c.composeURL(ep, method == http.MethodGet)
	if err != nil {
		return outcome.Err[Envelope](err)
	}

	var reqBody io.Reader
	if method == http.MethodPost && len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return outcome.Err[Envelope](fmt.Errorf("%w: %v", types.ErrInvalidURL, err))
	}
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost && len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("api", "request", err)
		}
		return outcome.Err[Envelope](fmt.Errorf("api request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("api", "request", err)
		}
		return outcome.Err[Envelope](fmt.Errorf("api response read: %w", err))
	}

	if c.metrics != nil {
		c.metrics.RecordRequest(method, c.config.Host, time.Since(start))
	}
	c.logger.Debug("Request completed",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(raw))

	return parseEnvelope(raw)
}

// Get issues a GET request for the endpoint.
func (c *Client) Get(ctx context.Context, ep Endpoint) outcome.Outcome[Envelope] {
	return c.Request(ctx, ep, http.MethodGet, nil)
}

// Post issues a POST request for the endpoint with an optional raw
// body.
func (c *Client) Post(ctx context.Context, ep Endpoint, body []byte) outcome.Outcome[Envelope] {
	return c.Request(ctx, ep, http.MethodPost, body)
}

// Fetch retrieves an absolute URL outside the configured host, for
// callers that hold complete URLs such as the image loader. It returns
// the body bytes and the final URL after any redirects.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("api", "fetch", err)
		}
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	// The transport rewrites resp.Request across redirects, so its URL
	// is the final one.
	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, finalURL, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if len(raw) == 0 {
		return nil, finalURL, types.ErrNoData
	}

	if c.metrics != nil {
		c.metrics.RecordRequest(http.MethodGet, req.URL.Host, time.Since(start))
	}
	c.logger.Debug("Fetch completed",
		"url", rawURL,
		"final_url", finalURL,
		"status", resp.StatusCode,
		"bytes", len(raw))
	return raw, finalURL, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if cc := c.policy.CacheControl(); cc != "" {
		req.Header.Set("Cache-Control", cc)
	}
}

// composeURL assembles scheme://host[:port]/path[?query] and validates
// it in one pass. Parse failures map to ErrInvalidURL.
func (c *Client) composeURL(ep Endpoint, withQuery bool) (string, error) {
	host := c.config.Host
	if c.config.Port > 0 {
		host = net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))
	}
	path := ep.Path()
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse(c.config.Scheme + "://" + host + path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Host != host {
		// Parse succeeded but reinterpreted the host, e.g. a host
		// string carrying its own path or userinfo.
		return "", fmt.Errorf("%w: host %q", types.ErrInvalidURL, c.config.Host)
	}
	if withQuery {
		if q := ep.Query(); len(q) > 0 {
			u.RawQuery = q.Encode()
		}
	}
	return u.String(), nil
}

// parseEnvelope applies the response decoding policy: empty bodies are
// rejected, then anything the permissive JSON parser accepts is
// narrowed to the two envelope shapes.
func parseEnvelope(raw []byte) outcome.Outcome[Envelope] {
	if len(raw) == 0 {
		return outcome.Err[Envelope](types.ErrBadResponse)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return outcome.Err[Envelope](fmt.Errorf("%w: %v", types.ErrInvalidJSON, err))
	}

	switch v := parsed.(type) {
	case map[string]any:
		return outcome.Ok(ObjectEnvelope(v))
	case []any:
		return outcome.Ok(ArrayEnvelope(v))
	default:
		return outcome.Err[Envelope](fmt.Errorf("%w: top-level %T", types.ErrInvalidFormat, parsed))
	}
}
