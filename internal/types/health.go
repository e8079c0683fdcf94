package types

import "time"

// HealthStatus represents the overall health state.
type HealthStatus int

const (
	// HealthStatusHealthy indicates all systems operating normally.
	HealthStatusHealthy HealthStatus = iota + 1
	// HealthStatusDegraded indicates partial functionality (e.g., disk unavailable).
	HealthStatusDegraded
	// HealthStatusUnhealthy indicates critical failure.
	HealthStatusUnhealthy
)

// String returns the string representation of health status.
func (s HealthStatus) String() string {
	switch s {
	case HealthStatusHealthy:
		return "healthy"
	case HealthStatusDegraded:
		return "degraded"
	case HealthStatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// HealthMetrics contains overall store health information.
type HealthMetrics struct {
	Timestamp time.Time
	Disk      DiskHealthMetrics
	Memory    MemoryHealthMetrics
	Status    HealthStatus
}

// MemoryHealthMetrics contains memory cache health details.
type MemoryHealthMetrics struct {
	Status          HealthStatus
	Available       bool
	EntryCount      int
	SizeBytes       int64
	MaxSizeBytes    int64
	UsagePercentage float64
	HitCount        int64
	MissCount       int64
	HitRatio        float64
	EvictionCount   int64
}

// DiskHealthMetrics contains disk tier health details.
//
//nolint:govet // Metrics struct - logical grouping prioritized for readability
type DiskHealthMetrics struct {
	DroppedWrites int64
	WriteFailures int64
	HitCount      int64
	MissCount     int64
	HitRatio      float64
	PendingWrites int
	Status        HealthStatus
	Available     bool
}

// MetricsSnapshot contains a point-in-time view of store metrics.
//
//nolint:govet // Metrics struct with many counters - grouping by category improves readability
type MetricsSnapshot struct {
	Timestamp time.Time
	// Hit/miss counters
	MemoryHits   int64
	MemoryMisses int64
	DiskHits     int64
	DiskMisses   int64
	// Operation counters
	LoadCount   int64
	SaveCount   int64
	DeleteCount int64
	ErrorCount  int64
	// Consumer counters
	RequestCount   int64
	ImageLoadCount int64

	// Latency metrics (milliseconds)
	AvgLatencyMs float64
	P50LatencyMs float64
	P95LatencyMs float64
	P99LatencyMs float64

	// Memory cache metrics
	MemorySizeBytes  int64
	MemoryEntries    int64
	MemoryEvictions  int64
	MemoryMaxBytes   int64
	MemoryUsageRatio float64

	// Disk tier metrics
	DiskAvailable     bool
	DiskPendingWrites int
	DiskDroppedWrites int64
	DiskWriteFailures int64
}

// MemoryHitRatio calculates the memory cache hit ratio.
func (s *MetricsSnapshot) MemoryHitRatio() float64 {
	total := s.MemoryHits + s.MemoryMisses
	if total == 0 {
		return 0
	}
	return float64(s.MemoryHits) / float64(total)
}

// DiskHitRatio calculates the disk tier hit ratio.
func (s *MetricsSnapshot) DiskHitRatio() float64 {
	total := s.DiskHits + s.DiskMisses
	if total == 0 {
		return 0
	}
	return float64(s.DiskHits) / float64(total)
}

// TotalHitRatio calculates the overall hit ratio across both tiers.
func (s *MetricsSnapshot) TotalHitRatio() float64 {
	totalHits := s.MemoryHits + s.DiskHits
	totalMisses := s.MemoryMisses + s.DiskMisses
	total := totalHits + totalMisses
	if total == 0 {
		return 0
	}
	return float64(totalHits) / float64(total)
}
