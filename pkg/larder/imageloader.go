package larder

import (
	"log/slog"

	"github.com/LavishGent/larder/internal/imageloader"
)

// Type aliases for the image loader so callers do not need to import internal packages.
type (
	// ImageLoader serves images from the object store, falling back to the network.
	ImageLoader = imageloader.Loader

	// LoaderOption configures an ImageLoader.
	LoaderOption = imageloader.LoaderOption

	// ImageRecord is a fetched image together with the URL it was resolved from.
	ImageRecord = imageloader.ImageRecord

	// Fetcher retrieves raw bytes from a URL. *Client satisfies it.
	Fetcher = imageloader.Fetcher
)

// NewImageLoader creates an image loader backed by the given store and fetcher.
func NewImageLoader(store Store, fetcher Fetcher, opts ...LoaderOption) (*ImageLoader, error) {
	return imageloader.NewLoader(store, fetcher, opts...)
}

// WithLoaderLogger sets the logger used by the image loader.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return imageloader.WithLogger(logger)
}

// WithLoaderRecorder sets the metrics recorder used by the image loader.
func WithLoaderRecorder(metrics MetricsRecorder) LoaderOption {
	return imageloader.WithRecorder(metrics)
}

// WithPrefetchConcurrency bounds how many images Prefetch loads at once.
func WithPrefetchConcurrency(n int) LoaderOption {
	return imageloader.WithPrefetchConcurrency(n)
}

// WithLocation stores image records under the given location instead of
// the cache location.
func WithLocation(loc StorageLocation) LoaderOption {
	return imageloader.WithLocation(loc)
}
