package larder

import (
	"github.com/LavishGent/larder/internal/types"
)

type (
	// StorageLocation selects the platform directory a payload lives in.
	StorageLocation = types.StorageLocation
	// StoragePayload carries both destination and payload for a save.
	StoragePayload = types.StoragePayload
	// MemoryCacheStats contains statistics about the memory tier.
	MemoryCacheStats = types.MemoryCacheStats
	// DiskCacheStats contains statistics about the disk tier.
	DiskCacheStats = types.DiskCacheStats
	// StoreStats combines statistics from both tiers.
	StoreStats = types.StoreStats
	// MetricsRecorder provides operations for recording store metrics.
	MetricsRecorder = types.MetricsRecorder
	// Logger provides logging operations.
	Logger = types.Logger
	// StoreOptions holds construction-time overrides for the store.
	StoreOptions = types.StoreOptions
	// MemoryCacheLayer is the memory tier contract.
	MemoryCacheLayer = types.MemoryCacheLayer
	// DiskCacheLayer is the disk tier contract.
	DiskCacheLayer = types.DiskCacheLayer
)

const (
	// LocationCache resolves to the platform cache directory.
	LocationCache = types.LocationCache
	// LocationDocument resolves to the platform document directory.
	LocationDocument = types.LocationDocument
)

// CacheWrite builds a payload destined for the cache directory.
func CacheWrite(data []byte) StoragePayload {
	return types.CacheWrite(data)
}

// DocumentWrite builds a payload destined for the document directory.
func DocumentWrite(data []byte) StoragePayload {
	return types.DocumentWrite(data)
}
