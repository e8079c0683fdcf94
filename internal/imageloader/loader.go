// Package imageloader composes the object store and the HTTP client
// into a cache-first image fetcher.
package imageloader

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LavishGent/larder/internal/types"
	"github.com/LavishGent/larder/pkg/outcome"
)

const (
	// DefaultPrefetchConcurrency bounds concurrent fetches in Prefetch.
	DefaultPrefetchConcurrency = 4
	// DefaultSaveTimeout bounds a single background re-save.
	DefaultSaveTimeout = 5 * time.Second
)

// Fetcher retrieves raw bytes for an absolute URL and reports the
// final URL after any redirects.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

// ImageRecord is the cached form of a fetched image: the raw bytes
// plus the URL they were ultimately served from.
type ImageRecord struct {
	Bytes []byte `json:"bytes"`
	URL   string `json:"url"`
}

// Loader loads images cache-first, falling back to the network, and
// refreshes the cache in the background after every successful load.
type Loader struct {
	store               types.ObjectStore
	fetcher             Fetcher
	location            types.StorageLocation
	logger              *slog.Logger
	metrics             types.MetricsRecorder
	saveTimeout         time.Duration
	prefetchConcurrency int

	saves sync.WaitGroup
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger.With("component", "image-loader")
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(metrics types.MetricsRecorder) LoaderOption {
	return func(l *Loader) {
		l.metrics = metrics
	}
}

// WithPrefetchConcurrency overrides the Prefetch fetch limit.
func WithPrefetchConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.prefetchConcurrency = n
		}
	}
}

// WithLocation stores records under the given location instead of
// the cache location.
func WithLocation(loc types.StorageLocation) LoaderOption {
	return func(l *Loader) {
		l.location = loc
	}
}

// NewLoader builds a Loader over the given store and fetcher.
func NewLoader(store types.ObjectStore, fetcher Fetcher, opts ...LoaderOption) (*Loader, error) {
	if store == nil {
		return nil, fmt.Errorf("imageloader: store is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("imageloader: fetcher is required")
	}

	l := &Loader{
		store:               store,
		fetcher:             fetcher,
		location:            types.LocationCache,
		logger:              slog.Default().With("component", "image-loader"),
		saveTimeout:         DefaultSaveTimeout,
		prefetchConcurrency: DefaultPrefetchConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadImage returns the image for the URL, keyed in the store by the
// URL string itself. The store is consulted first; a miss or an
// undecodable entry falls back to one network fetch, and the record's
// URL is resolved from the response's final URL to capture redirects.
// Every successful load schedules a background cache refresh; the
// call returns without waiting for it.
func (l *Loader) LoadImage(ctx context.Context, rawURL string) outcome.Outcome[ImageRecord] {
	start := time.Now()

	if loaded := l.store.Load(ctx, l.location, rawURL); loaded.IsOk() {
		rec, err := outcome.Decode[ImageRecord](loaded).Value()
		if err == nil {
			if l.metrics != nil {
				l.metrics.RecordImageLoad("cache", len(rec.Bytes), time.Since(start))
			}
			l.resave(rec, rawURL)
			return outcome.Ok(rec)
		}
		l.logger.Debug("Cached image not decodable, refetching", "url", rawURL, "error", err)
	}

	data, finalURL, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if l.metrics != nil {
			l.metrics.RecordError("image", "fetch", err)
		}
		return outcome.Err[ImageRecord](err)
	}

	rec := ImageRecord{Bytes: data, URL: rawURL}
	if finalURL != "" {
		rec.URL = finalURL
	}
	if l.metrics != nil {
		l.metrics.RecordImageLoad("network", len(rec.Bytes), time.Since(start))
	}
	l.resave(rec, rawURL)
	return outcome.Ok(rec)
}

// Prefetch warms the cache for several URLs with a bounded number of
// concurrent fetches. Every URL is attempted; the first failure is
// returned after all attempts finish.
func (l *Loader) Prefetch(ctx context.Context, urls []string) error {
	var g errgroup.Group
	g.SetLimit(l.prefetchConcurrency)

	for _, u := range urls {
		g.Go(func() error {
			if err := l.LoadImage(ctx, u).Error(); err != nil {
				return fmt.Errorf("prefetch %s: %w", u, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Settle blocks until every re-save scheduled so far has been handed
// to the store, or the context expires. Disk persistence may still be
// in flight afterwards; the store's own Flush covers that.
func (l *Loader) Settle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.saves.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resave refreshes the stored record without blocking the caller.
// Failures are logged only; the caller already holds the image.
func (l *Loader) resave(rec ImageRecord, key string) {
	data, err := outcome.Encode(rec).Value()
	if err != nil {
		l.logger.Warn("Image record not encodable", "url", key, "error", err)
		return
	}

	l.saves.Add(1)
	go func() {
		defer l.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), l.saveTimeout)
		defer cancel()
		payload := types.StoragePayload{Location: l.location, Data: data}
		if err := l.store.Save(ctx, payload, key); err != nil {
			l.logger.Debug("Image re-save failed", "url", key, "error", err)
		}
	}()
}
