package types

import (
	"context"
	"time"

	"github.com/LavishGent/larder/pkg/outcome"
)

type CacheInfo interface {
	Name() string
	IsAvailable() bool
}

type CacheReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Contains(ctx context.Context, key string) (bool, error)
}

type CacheWriter interface {
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type CacheClearer interface {
	Clear(ctx context.Context) error
}

type CacheCloser interface {
	Close() error
}

type MemoryStatsProvider interface {
	Stats() MemoryCacheStats
	EntryCount() int
	Size() int64
	MaxSize() int64
	UsagePercentage() float64
	HitRatio() float64
}

type DiskReader interface {
	Read(ctx context.Context, loc StorageLocation, key string) ([]byte, error)
	Exists(ctx context.Context, loc StorageLocation, key string) (bool, error)
}

type DiskWriter interface {
	WriteAsync(loc StorageLocation, key string, data []byte) error
	Remove(ctx context.Context, loc StorageLocation, key string) error
	RemoveAll(ctx context.Context, loc StorageLocation) error
}

type DiskStatsProvider interface {
	Stats() DiskCacheStats
	PendingWrites() int
	DroppedWrites() int64
}

type MemoryCacheLayer interface {
	CacheInfo
	CacheReader
	CacheWriter
	CacheClearer
	CacheCloser
	MemoryStatsProvider
}

type DiskCacheLayer interface {
	CacheInfo
	DiskReader
	DiskWriter
	DiskStatsProvider
	CacheCloser
	Flush(ctx context.Context) error
}

// ObjectStore is the narrow store surface consumers such as the image
// loader depend on.
type ObjectStore interface {
	Load(ctx context.Context, loc StorageLocation, key string) outcome.Outcome[[]byte]
	Save(ctx context.Context, payload StoragePayload, key string) error
}

type MetricsRecorder interface {
	RecordHit(layer string, key string, latency time.Duration)
	RecordMiss(layer string, key string, latency time.Duration)
	RecordSet(layer string, key string, size int, latency time.Duration)
	RecordDelete(layer string, key string, latency time.Duration)
	RecordError(layer string, operation string, err error)
	RecordRequest(method string, host string, latency time.Duration)
	RecordImageLoad(source string, size int, latency time.Duration)
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
