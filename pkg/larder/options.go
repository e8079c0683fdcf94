package larder

import (
	"github.com/go-git/go-billy/v5"
)

// StoreOption configures store construction.
type StoreOption func(*StoreOptions)

// WithLogger sets the logger used by the store and its tiers.
func WithLogger(logger Logger) StoreOption {
	return func(o *StoreOptions) {
		o.Logger = logger
	}
}

// WithMetricsRecorder sets the metrics recorder the store reports to.
func WithMetricsRecorder(metrics MetricsRecorder) StoreOption {
	return func(o *StoreOptions) {
		o.Metrics = metrics
	}
}

// WithFilesystem overrides the disk tier's filesystem. Tests inject an
// in-memory filesystem here.
func WithFilesystem(fs billy.Filesystem) StoreOption {
	return func(o *StoreOptions) {
		o.Filesystem = fs
	}
}

// WithMemoryLayer replaces the memory tier implementation.
func WithMemoryLayer(layer MemoryCacheLayer) StoreOption {
	return func(o *StoreOptions) {
		o.MemoryLayer = layer
	}
}

// WithDiskLayer replaces the disk tier implementation.
func WithDiskLayer(layer DiskCacheLayer) StoreOption {
	return func(o *StoreOptions) {
		o.DiskLayer = layer
	}
}

// WithoutDisk disables the disk tier entirely.
func WithoutDisk() StoreOption {
	return func(o *StoreOptions) {
		o.DisableDisk = true
	}
}
