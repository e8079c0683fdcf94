package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/LavishGent/larder/internal/config"
	"github.com/LavishGent/larder/internal/types"
	"github.com/LavishGent/larder/pkg/outcome"
)

// DefaultShutdownTimeout is the default timeout for shutting down the store.
const DefaultShutdownTimeout = 30 * time.Second

// DefaultBackgroundOpTimeout is the default timeout for background operations.
const DefaultBackgroundOpTimeout = 5 * time.Second

// Store coordinates the memory and disk tiers. Loads consult memory
// first and fall back to disk; saves write memory synchronously and
// queue the disk write.
type Store struct {
	memory         types.MemoryCacheLayer
	disk           types.DiskCacheLayer
	config         *config.Config
	metrics        types.MetricsRecorder
	logger         *slog.Logger
	keyValidator   *types.KeyValidator
	shutdownCancel context.CancelFunc
	shutdownCtx    context.Context
	bgWg           sync.WaitGroup
	bgMu           sync.Mutex
	closed         atomic.Bool
}

var _ types.ObjectStore = (*Store)(nil)

// NewStore creates a new store with the given configuration and options.
func NewStore(cfg *config.Config, opts *types.StoreOptions) (*Store, error) {
	logger := slog.Default()
	if opts != nil && opts.Logger != nil {
		logger = slog.New(slogAdapter{logger: opts.Logger})
	}
	logger = logger.With("component", "store")

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	s := &Store{
		config:         cfg,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	disableDisk := !cfg.Disk.Enabled
	if opts != nil {
		if opts.Metrics != nil {
			s.metrics = opts.Metrics
		}
		if opts.DisableDisk {
			disableDisk = true
		}
	}

	if cfg.KeyValidation.Enabled {
		s.keyValidator = types.NewKeyValidator(cfg.KeyValidation.ToTypesConfig())
	}

	if opts != nil && opts.MemoryLayer != nil {
		s.memory = opts.MemoryLayer
	} else if cfg.Memory.Enabled {
		memCache, err := NewMemoryCache(cfg.Memory, logger)
		if err != nil {
			return nil, err
		}
		s.memory = memCache
	} else {
		s.memory = NewDisabledMemoryCache()
	}

	switch {
	case opts != nil && opts.DiskLayer != nil:
		s.disk = opts.DiskLayer
	case disableDisk:
		s.disk = NewDisabledDiskStore()
	default:
		var fs billy.Filesystem
		if opts != nil {
			fs = opts.Filesystem
		}
		s.disk = NewDiskStore(cfg.Disk, fs, logger)
	}

	return s, nil
}

// Load retrieves the bytes stored under key. Memory is consulted first;
// on a miss the disk tier is read and, on a hit, memory is repopulated
// in the background. With the disk tier unavailable the memory result
// stands, so a miss surfaces as ErrCacheMiss.
func (s *Store) Load(ctx context.Context, loc types.StorageLocation, key string) outcome.Outcome[[]byte] {
	if s.closed.Load() {
		return outcome.Err[[]byte](types.ErrClosed)
	}

	if err := s.validateKey(key); err != nil {
		return outcome.Err[[]byte](err)
	}

	start := time.Now()

	data, err := s.memory.Get(ctx, key)
	if err == nil {
		if s.metrics != nil {
			s.metrics.RecordHit("memory", key, time.Since(start))
		}
		return outcome.Ok(data)
	}

	if !types.IsCacheMiss(err) {
		s.logger.Debug("Memory cache error", "key", key, "error", err)
	}

	if !s.disk.IsAvailable() {
		if types.IsCacheMiss(err) && s.metrics != nil {
			s.metrics.RecordMiss("memory", key, time.Since(start))
		}
		return outcome.Err[[]byte](err)
	}

	data, err = s.disk.Read(ctx, loc, key)
	latency := time.Since(start)

	if err != nil {
		switch {
		case types.IsFileNotFound(err):
			if s.metrics != nil {
				s.metrics.RecordMiss("disk", key, latency)
			}
		case types.IsNoFilePath(err):
			s.logger.Debug("No resolvable directory", "location", loc.String(), "key", key)
		default:
			if s.metrics != nil {
				s.metrics.RecordError("disk", "read", err)
			}
		}
		return outcome.Err[[]byte](err)
	}

	s.runBackground(func(ctx context.Context) {
		if setErr := s.memory.Set(ctx, key, data); setErr != nil {
			s.logger.Debug("Failed to populate memory from disk", "key", key, "error", setErr)
		}
	})

	if s.metrics != nil {
		s.metrics.RecordHit("disk", key, latency)
	}

	return outcome.Ok(data)
}

// Save stores the payload under key. The memory write is synchronous and
// unconditional; the disk write is queued and applied by the worker, so
// failures there are logged rather than returned.
func (s *Store) Save(ctx context.Context, payload types.StoragePayload, key string) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	if err := s.validateKey(key); err != nil {
		return err
	}

	start := time.Now()

	memErr := s.memory.Set(ctx, key, payload.Data)

	if err := s.disk.WriteAsync(payload.Location, key, payload.Data); err != nil {
		s.logger.Warn("Disk write not queued",
			"key", key,
			"location", payload.Location.String(),
			"error", err,
		)
	}

	if s.metrics != nil {
		s.metrics.RecordSet(payload.Location.String(), key, len(payload.Data), time.Since(start))
	}

	return memErr
}

// Delete removes the key from both tiers.
func (s *Store) Delete(ctx context.Context, loc types.StorageLocation, key string) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	if err := s.validateKey(key); err != nil {
		return err
	}

	start := time.Now()

	memErr := s.memory.Delete(ctx, key)
	diskErr := s.disk.Remove(ctx, loc, key)

	if s.metrics != nil {
		s.metrics.RecordDelete(loc.String(), key, time.Since(start))
	}

	if memErr != nil {
		return memErr
	}
	return diskErr
}

// Contains checks both tiers for the key.
func (s *Store) Contains(ctx context.Context, loc types.StorageLocation, key string) (bool, error) {
	if s.closed.Load() {
		return false, types.ErrClosed
	}

	if err := s.validateKey(key); err != nil {
		return false, err
	}

	exists, err := s.memory.Contains(ctx, key)
	if err != nil {
		s.logger.Debug("Memory contains check failed", "key", key, "error", err)
	} else if exists {
		return true, nil
	}

	return s.disk.Exists(ctx, loc, key)
}

// Clear removes every memory entry and the whole on-disk directory for
// the location. Memory is cleared wholesale because it is not segmented
// by location.
func (s *Store) Clear(ctx context.Context, loc types.StorageLocation) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	memErr := s.memory.Clear(ctx)
	diskErr := s.disk.RemoveAll(ctx, loc)

	if memErr != nil {
		return memErr
	}
	return diskErr
}

// Flush blocks until every disk write queued before the call has been
// applied. Callers use it to observe the effect of fire-and-forget saves.
func (s *Store) Flush(ctx context.Context) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	return s.disk.Flush(ctx)
}

// Stats returns a point-in-time view of both tiers.
func (s *Store) Stats() types.StoreStats {
	return types.StoreStats{
		Memory: s.memory.Stats(),
		Disk:   s.disk.Stats(),
	}
}

// Health returns comprehensive health metrics for the store.
func (s *Store) Health(ctx context.Context) (*types.HealthMetrics, error) {
	metrics := &types.HealthMetrics{
		Timestamp: time.Now(),
	}

	memStats := s.memory.Stats()
	metrics.Memory = types.MemoryHealthMetrics{
		Status:          types.HealthStatusHealthy,
		Available:       s.memory.IsAvailable(),
		EntryCount:      s.memory.EntryCount(),
		SizeBytes:       s.memory.Size(),
		MaxSizeBytes:    s.memory.MaxSize(),
		UsagePercentage: s.memory.UsagePercentage(),
		HitCount:        memStats.Hits,
		MissCount:       memStats.Misses,
		HitRatio:        s.memory.HitRatio(),
		EvictionCount:   memStats.Evictions,
	}

	diskStats := s.disk.Stats()
	metrics.Disk = types.DiskHealthMetrics{
		Status:        types.HealthStatusHealthy,
		Available:     s.disk.IsAvailable(),
		PendingWrites: diskStats.PendingWrites,
		DroppedWrites: diskStats.DroppedWrites,
		WriteFailures: diskStats.WriteFailures,
		HitCount:      diskStats.Hits,
		MissCount:     diskStats.Misses,
		HitRatio:      diskHitRatio(diskStats),
	}

	if !s.disk.IsAvailable() {
		metrics.Disk.Status = types.HealthStatusUnhealthy
	}

	switch {
	case metrics.Memory.Status == types.HealthStatusHealthy && metrics.Disk.Status == types.HealthStatusHealthy:
		metrics.Status = types.HealthStatusHealthy
	case metrics.Memory.Status == types.HealthStatusHealthy:
		metrics.Status = types.HealthStatusDegraded
	default:
		metrics.Status = types.HealthStatusUnhealthy
	}

	return metrics, nil
}

// IsHealthy returns true if the store is functioning normally.
func (s *Store) IsHealthy(ctx context.Context) bool {
	return s.memory.IsAvailable()
}

// IsMemoryAvailable returns true if the memory tier is available.
func (s *Store) IsMemoryAvailable() bool {
	return s.memory.IsAvailable()
}

// IsDiskAvailable returns true if the disk tier is available.
func (s *Store) IsDiskAvailable() bool {
	return s.disk.IsAvailable()
}

// Close releases all resources using the default shutdown timeout.
// It waits for in-flight background operations before closing the tiers.
func (s *Store) Close() error {
	return s.CloseWithTimeout(DefaultShutdownTimeout)
}

// CloseWithTimeout releases all resources with a configurable timeout.
// If background operations don't complete within the timeout, it returns
// ErrShutdownTimeout but still proceeds to close both tiers.
func (s *Store) CloseWithTimeout(timeout time.Duration) error {
	// Acquire bgMu to prevent new background operations from starting.
	// This synchronizes with runBackground so no Add happens after we set
	// closed=true and before Wait completes.
	s.bgMu.Lock()
	if s.closed.Swap(true) {
		s.bgMu.Unlock()
		return nil
	}
	s.shutdownCancel()
	s.bgMu.Unlock()

	s.logger.Info("Closing store, waiting for background operations", "timeout", timeout)

	done := make(chan struct{})
	go func() {
		s.bgWg.Wait()
		close(done)
	}()

	var timedOut bool
	select {
	case <-done:
		s.logger.Info("Background operations complete, closing tiers")
	case <-time.After(timeout):
		s.logger.Warn("Shutdown timeout exceeded, proceeding with close", "timeout", timeout)
		timedOut = true
	}

	var errs []error

	if timedOut {
		errs = append(errs, types.ErrShutdownTimeout)
	}

	if err := s.memory.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := s.disk.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// runBackground executes fn in a goroutine tracked for graceful shutdown.
// The function receives a context derived from the shutdown context with
// a timeout. The goroutine is not started if the store is already closed.
func (s *Store) runBackground(fn func(ctx context.Context)) {
	// Hold bgMu while checking closed and adding to the WaitGroup to
	// prevent a race with CloseWithTimeout where Add is called after Wait
	// starts.
	s.bgMu.Lock()
	if s.closed.Load() {
		s.bgMu.Unlock()
		return
	}
	s.bgWg.Add(1)
	s.bgMu.Unlock()

	go func() {
		defer s.bgWg.Done()
		ctx, cancel := context.WithTimeout(s.shutdownCtx, DefaultBackgroundOpTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *Store) validateKey(key string) error {
	if s.keyValidator == nil {
		return nil
	}
	return s.keyValidator.Validate(key)
}

func diskHitRatio(stats types.DiskCacheStats) float64 {
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0
	}
	return float64(stats.Hits) / float64(total)
}

//nolint:govet // Simple adapter struct - alignment optimization minimal
type slogAdapter struct {
	attrs  []slog.Attr
	logger types.Logger
	group  string // current group prefix from WithGroup calls
}

// Enabled implements slog.Handler.
func (a slogAdapter) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires passing Record by value
func (a slogAdapter) Handle(ctx context.Context, r slog.Record) error {
	args := make([]any, 0, (len(a.attrs)+r.NumAttrs())*2)

	for _, attr := range a.attrs {
		key := attr.Key
		if a.group != "" {
			key = a.group + "." + key
		}
		args = append(args, key, attr.Value.Any())
	}

	r.Attrs(func(attr slog.Attr) bool {
		key := attr.Key
		if a.group != "" {
			key = a.group + "." + key
		}
		args = append(args, key, attr.Value.Any())
		return true
	})

	switch r.Level {
	case slog.LevelDebug:
		a.logger.Debug(r.Message, args...)
	case slog.LevelInfo:
		a.logger.Info(r.Message, args...)
	case slog.LevelWarn:
		a.logger.Warn(r.Message, args...)
	case slog.LevelError:
		a.logger.Error(r.Message, args...)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (a slogAdapter) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(a.attrs), len(a.attrs)+len(attrs))
	copy(newAttrs, a.attrs)
	newAttrs = append(newAttrs, attrs...)
	return slogAdapter{
		logger: a.logger,
		attrs:  newAttrs,
		group:  a.group,
	}
}

// WithGroup implements slog.Handler.
func (a slogAdapter) WithGroup(name string) slog.Handler {
	newGroup := name
	if a.group != "" {
		newGroup = a.group + "." + name
	}
	return slogAdapter{
		logger: a.logger,
		attrs:  a.attrs,
		group:  newGroup,
	}
}
