package larder

import (
	"context"
	"time"

	"github.com/LavishGent/larder/pkg/outcome"
)

// Store is the two-tier object store: loads consult the memory tier
// first and fall back to flat files on disk; saves write memory
// synchronously and persist to disk in the background.
type Store interface {
	Load(ctx context.Context, loc StorageLocation, key string) outcome.Outcome[[]byte]
	Save(ctx context.Context, payload StoragePayload, key string) error
	Delete(ctx context.Context, loc StorageLocation, key string) error
	Contains(ctx context.Context, loc StorageLocation, key string) (bool, error)
	Clear(ctx context.Context, loc StorageLocation) error
	Flush(ctx context.Context) error
	Stats() StoreStats
	Health(ctx context.Context) (*HealthMetrics, error)
	IsHealthy(ctx context.Context) bool
	IsMemoryAvailable() bool
	IsDiskAvailable() bool
	Close() error
}

// Publisher forwards metrics to an external backend such as StatsD.
type Publisher interface {
	Gauge(name string, value float64, tags ...string)
	Incr(name string, tags ...string)
	Count(name string, value int64, tags ...string)
	Histogram(name string, value float64, tags ...string)
	Timing(name string, duration time.Duration, tags ...string)
	Event(title, text string, alertType string, tags ...string)
	PublishHealthMetrics(metrics *PublisherHealthMetrics)
	Close() error
}

// PublisherHealthMetrics is the flattened health payload handed to
// publishers on each publish interval.
type PublisherHealthMetrics struct {
	MemoryUsedBytes       int64
	MemoryLimitBytes      int64
	MemoryUsagePercentage float64
	TotalEntries          int64
	HitRatio              float64
	AverageLatencyMs      float64
	PendingWrites         int
	DiskAvailable         bool
}
