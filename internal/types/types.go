// Package types provides shared types for the larder data-access library.
// This package breaks import cycles between pkg/larder and internal/cache.
package types

// StorageLocation identifies the directory family a disk entry lives under.
type StorageLocation int

const (
	LocationCache StorageLocation = iota + 1
	LocationDocument
)

func (l StorageLocation) String() string {
	switch l {
	case LocationCache:
		return "cache"
	case LocationDocument:
		return "document"
	default:
		return "unknown"
	}
}

// StoragePayload carries both the destination location and the bytes to
// persist. Build one with CacheWrite or DocumentWrite.
type StoragePayload struct {
	Location StorageLocation
	Data     []byte
}

// CacheWrite returns a payload destined for the cache directory.
func CacheWrite(data []byte) StoragePayload {
	return StoragePayload{Location: LocationCache, Data: data}
}

// DocumentWrite returns a payload destined for the document directory.
func DocumentWrite(data []byte) StoragePayload {
	return StoragePayload{Location: LocationDocument, Data: data}
}

type MemoryCacheStats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Deletes   int64
	Evictions int64
}

type DiskCacheStats struct {
	Hits          int64
	Misses        int64
	Writes        int64
	WriteFailures int64
	DroppedWrites int64
	Deletes       int64
	PendingWrites int
}

// StoreStats is a point-in-time view of both tiers.
type StoreStats struct {
	Memory MemoryCacheStats
	Disk   DiskCacheStats
}
