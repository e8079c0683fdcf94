package api

import "net/url"

// Endpoint is the path and query abstraction requests are built from.
// Callers with route types of their own implement it directly.
type Endpoint interface {
	// Path returns the URL path, with or without a leading slash.
	Path() string
	// Query returns the parameters applied to GET requests. May be nil.
	Query() url.Values
}

type endpoint struct {
	path   string
	params url.Values
}

// NewEndpoint builds an Endpoint from a path and optional query
// parameters.
func NewEndpoint(path string, params url.Values) Endpoint {
	return endpoint{path: path, params: params}
}

func (e endpoint) Path() string { return e.path }

func (e endpoint) Query() url.Values { return e.params }
