package larder

import (
	"github.com/LavishGent/larder/internal/cache"
	"github.com/LavishGent/larder/internal/config"
)

// New creates a new object store with default configuration.
func New(opts ...StoreOption) (Store, error) {
	cfg := config.DefaultConfig()
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a new object store from configuration.
func NewFromConfig(cfg *config.Config, opts ...StoreOption) (Store, error) {
	storeOpts := &StoreOptions{}
	for _, opt := range opts {
		opt(storeOpts)
	}
	return cache.NewStore(cfg, storeOpts)
}

// NewFromFile creates a new object store from a JSON config file.
func NewFromFile(path string, opts ...StoreOption) (Store, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewMemoryOnly creates an object store using only the in-memory tier.
func NewMemoryOnly(opts ...StoreOption) (Store, error) {
	cfg := config.DefaultConfig()
	cfg.Disk.Enabled = false
	return NewFromConfig(cfg, opts...)
}

// Config returns a default configuration that can be modified before creating a store.
func Config() *config.Config {
	return config.DefaultConfig()
}

// TestConfig returns a configuration suitable for unit tests.
func TestConfig() *config.Config {
	return config.ForTesting()
}
