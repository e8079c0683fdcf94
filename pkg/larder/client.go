package larder

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/LavishGent/larder/internal/api"
	"github.com/LavishGent/larder/internal/config"
)

// Type aliases for the HTTP client so callers do not need to import internal packages.
type (
	// Client fetches JSON bodies over HTTP and parses them into tagged envelopes.
	Client = api.Client

	// ClientOption configures a Client.
	ClientOption = api.ClientOption

	// Endpoint describes a request path and its query parameters.
	Endpoint = api.Endpoint

	// Envelope is a parsed JSON response holding either an object or an array.
	Envelope = api.Envelope

	// EnvelopeKind tags which variant an Envelope holds.
	EnvelopeKind = api.EnvelopeKind

	// CachePolicy selects the Cache-Control directive sent with requests.
	CachePolicy = api.CachePolicy
)

// Envelope kinds.
const (
	KindObject = api.KindObject
	KindArray  = api.KindArray
)

// Cache policies.
const (
	PolicyDefault     = api.PolicyDefault
	PolicyReload      = api.PolicyReload
	PolicyPreferCache = api.PolicyPreferCache
	PolicyCacheOnly   = api.PolicyCacheOnly
)

// NewClient creates an HTTP client from configuration.
func NewClient(cfg *config.Config, opts ...ClientOption) (*Client, error) {
	return api.NewClient(cfg.API, opts...)
}

// NewEndpoint builds an Endpoint from a path and query parameters.
func NewEndpoint(path string, params url.Values) Endpoint {
	return api.NewEndpoint(path, params)
}

// ParsePolicy maps a policy name from configuration onto a CachePolicy.
func ParsePolicy(s string) CachePolicy {
	return api.ParsePolicy(s)
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return api.WithHTTPClient(hc)
}

// WithClientLogger sets the logger used by the client.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return api.WithLogger(logger)
}

// WithClientRecorder sets the metrics recorder used by the client.
func WithClientRecorder(metrics MetricsRecorder) ClientOption {
	return api.WithRecorder(metrics)
}
