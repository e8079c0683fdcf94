package cache

import (
	"context"

	"github.com/LavishGent/larder/internal/types"
)

// DisabledMemoryCache is a no-op memory cache implementation.
type DisabledMemoryCache struct{}

// NewDisabledMemoryCache creates a new disabled memory cache.
func NewDisabledMemoryCache() *DisabledMemoryCache {
	return &DisabledMemoryCache{}
}

// Name returns the cache layer name.
func (c *DisabledMemoryCache) Name() string { return "memory-disabled" }

// IsAvailable returns false as this cache is disabled.
func (c *DisabledMemoryCache) IsAvailable() bool { return false }

// Close does nothing as this cache is disabled.
func (c *DisabledMemoryCache) Close() error { return nil }

// EntryCount returns 0 as this cache is disabled.
func (c *DisabledMemoryCache) EntryCount() int { return 0 }

// Size returns 0 as this cache is disabled.
func (c *DisabledMemoryCache) Size() int64 { return 0 }

// MaxSize returns 0 as this cache is disabled.
func (c *DisabledMemoryCache) MaxSize() int64 { return 0 }

// UsagePercentage returns 0 as this cache is disabled.
func (c *DisabledMemoryCache) UsagePercentage() float64 { return 0 }

// HitRatio returns 0 as this cache is disabled.
func (c *DisabledMemoryCache) HitRatio() float64 { return 0 }

// Stats returns empty statistics as this cache is disabled.
func (c *DisabledMemoryCache) Stats() types.MemoryCacheStats { return types.MemoryCacheStats{} }

// Clear does nothing as this cache is disabled.
func (c *DisabledMemoryCache) Clear(ctx context.Context) error { return nil }

// Get returns ErrCacheMiss as this cache is disabled.
func (c *DisabledMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, types.ErrCacheMiss
}

// Set does nothing as this cache is disabled.
func (c *DisabledMemoryCache) Set(ctx context.Context, key string, value []byte) error {
	return nil
}

// Delete does nothing as this cache is disabled.
func (c *DisabledMemoryCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Contains returns false as this cache is disabled.
func (c *DisabledMemoryCache) Contains(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// DisabledDiskStore is a no-op disk tier implementation.
type DisabledDiskStore struct{}

// NewDisabledDiskStore creates a new disabled disk store.
func NewDisabledDiskStore() *DisabledDiskStore {
	return &DisabledDiskStore{}
}

// Name returns the cache layer name.
func (s *DisabledDiskStore) Name() string { return "disk-disabled" }

// IsAvailable returns false as this store is disabled.
func (s *DisabledDiskStore) IsAvailable() bool { return false }

// Close does nothing as this store is disabled.
func (s *DisabledDiskStore) Close() error { return nil }

// PendingWrites returns 0 as this store is disabled.
func (s *DisabledDiskStore) PendingWrites() int { return 0 }

// DroppedWrites returns 0 as this store is disabled.
func (s *DisabledDiskStore) DroppedWrites() int64 { return 0 }

// Stats returns empty statistics as this store is disabled.
func (s *DisabledDiskStore) Stats() types.DiskCacheStats { return types.DiskCacheStats{} }

// Read returns ErrNoFilePath as this store has no backing directory.
func (s *DisabledDiskStore) Read(ctx context.Context, loc types.StorageLocation, key string) ([]byte, error) {
	return nil, types.ErrNoFilePath
}

// Exists returns false as this store is disabled.
func (s *DisabledDiskStore) Exists(ctx context.Context, loc types.StorageLocation, key string) (bool, error) {
	return false, nil
}

// WriteAsync does nothing as this store is disabled.
func (s *DisabledDiskStore) WriteAsync(loc types.StorageLocation, key string, data []byte) error {
	return nil
}

// Remove does nothing as this store is disabled.
func (s *DisabledDiskStore) Remove(ctx context.Context, loc types.StorageLocation, key string) error {
	return nil
}

// RemoveAll does nothing as this store is disabled.
func (s *DisabledDiskStore) RemoveAll(ctx context.Context, loc types.StorageLocation) error {
	return nil
}

// Flush does nothing as this store is disabled.
func (s *DisabledDiskStore) Flush(ctx context.Context) error { return nil }

var _ types.MemoryCacheLayer = (*DisabledMemoryCache)(nil)
var _ types.DiskCacheLayer = (*DisabledDiskStore)(nil)
