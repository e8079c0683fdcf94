package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/LavishGent/larder/internal/config"
	"github.com/LavishGent/larder/internal/types"
)

const (
	dirMode   = 0o755
	tmpPrefix = ".larder-"
)

// DiskStore implements the persistent tier as flat files under the
// platform cache and document directories. Reads are synchronous; writes
// go through a bounded queue drained by a single worker goroutine, which
// also serializes directory creation.
type DiskStore struct {
	fs     billy.Filesystem
	config config.DiskConfig
	logger *slog.Logger

	writeQueue    chan writeOp
	pendingWrites atomic.Int32
	droppedWrites atomic.Int64
	stopCh        chan struct{}
	wg            sync.WaitGroup

	hits          atomic.Int64
	misses        atomic.Int64
	writes        atomic.Int64
	writeFailures atomic.Int64
	deletes       atomic.Int64

	closed atomic.Bool
}

// writeOp is one queued disk write. An op with a non-nil done channel is a
// flush barrier: the worker closes the channel instead of writing.
type writeOp struct {
	loc  types.StorageLocation
	key  string
	data []byte
	done chan struct{}
}

// NewDiskStore creates a disk store over the given filesystem. A nil fs
// uses the real local filesystem.
func NewDiskStore(cfg config.DiskConfig, fs billy.Filesystem, logger *slog.Logger) *DiskStore {
	if logger == nil {
		logger = slog.Default()
	}
	if fs == nil {
		fs = osfs.New("/")
	}

	s := &DiskStore{
		fs:         fs,
		config:     cfg,
		logger:     logger.With("component", "disk-store"),
		writeQueue: make(chan writeOp, cfg.MaxPendingWrites),
		stopCh:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.asyncWriteWorker()

	return s
}

// Name returns the cache layer name.
func (s *DiskStore) Name() string {
	return "disk"
}

// IsAvailable returns true if the store is not closed.
func (s *DiskStore) IsAvailable() bool {
	return !s.closed.Load()
}

// Read returns the stored bytes for key under the given location.
// The directory is resolved on every call, so a location that was
// unresolvable earlier is retried from scratch.
func (s *DiskStore) Read(ctx context.Context, loc types.StorageLocation, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, types.ErrClosed
	}

	dir, err := s.resolveDir(loc)
	if err != nil {
		return nil, err
	}

	data, err := util.ReadFile(s.fs, s.fs.Join(dir, filename(key)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.misses.Add(1)
			return nil, types.ErrFileNotFound
		}
		return nil, types.NewStoreError("Read", key, "disk", err)
	}

	s.hits.Add(1)
	return data, nil
}

// Exists reports whether a file for key is present under the location.
func (s *DiskStore) Exists(ctx context.Context, loc types.StorageLocation, key string) (bool, error) {
	if s.closed.Load() {
		return false, types.ErrClosed
	}

	dir, err := s.resolveDir(loc)
	if err != nil {
		return false, err
	}

	if _, err := s.fs.Stat(s.fs.Join(dir, filename(key))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, types.NewStoreError("Exists", key, "disk", err)
	}
	return true, nil
}

// WriteAsync queues a write and returns immediately. When the queue is
// full the write is dropped and counted rather than blocking the caller.
func (s *DiskStore) WriteAsync(loc types.StorageLocation, key string, data []byte) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	select {
	case s.writeQueue <- writeOp{loc: loc, key: key, data: data}:
		s.pendingWrites.Add(1)
		return nil
	default:
		s.droppedWrites.Add(1)
		s.logger.Warn("Write queue full, dropping write",
			"key", key,
			"dropped_total", s.droppedWrites.Load(),
		)
		return types.ErrWriteQueueFull
	}
}

func (s *DiskStore) asyncWriteWorker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			for {
				select {
				case op := <-s.writeQueue:
					s.executeWrite(op)
				default:
					return
				}
			}
		case op := <-s.writeQueue:
			s.executeWrite(op)
		}
	}
}

func (s *DiskStore) executeWrite(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}

	defer s.pendingWrites.Add(-1)

	start := time.Now()
	if err := s.writeFile(op.loc, op.key, op.data); err != nil {
		s.writeFailures.Add(1)
		s.logger.Warn("Async disk write failed",
			"key", op.key,
			"location", op.loc.String(),
			"error", err,
		)
		return
	}

	s.writes.Add(1)
	if d := time.Since(start); s.config.WriteTimeout > 0 && d > s.config.WriteTimeout {
		s.logger.Warn("Slow disk write", "key", op.key, "duration", d)
	}
}

// writeFile performs one durable write: resolve the directory, create it
// if missing, write to a temp file, then rename into place so readers
// never observe a partial file.
func (s *DiskStore) writeFile(loc types.StorageLocation, key string, data []byte) error {
	dir, err := s.resolveDir(loc)
	if err != nil {
		return err
	}

	if err := s.ensureDir(dir); err != nil {
		return err
	}

	tmp, err := s.fs.TempFile(dir, tmpPrefix)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmp.Name())
		return err
	}

	return s.fs.Rename(tmp.Name(), s.fs.Join(dir, filename(key)))
}

// ensureDir creates dir if needed. A stray regular file occupying the
// directory path is treated as if the directory were absent.
func (s *DiskStore) ensureDir(dir string) error {
	info, err := s.fs.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		if err := s.fs.Remove(dir); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return s.fs.MkdirAll(dir, dirMode)
}

// resolveDir maps a storage location to its directory, consulting the
// configured override first and the platform default otherwise.
func (s *DiskStore) resolveDir(loc types.StorageLocation) (string, error) {
	switch loc {
	case types.LocationCache:
		if s.config.CacheDir != "" {
			return s.fs.Join(s.config.CacheDir, s.config.Namespace), nil
		}
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrNoFilePath, err)
		}
		return s.fs.Join(base, s.config.Namespace), nil

	case types.LocationDocument:
		if s.config.DocumentDir != "" {
			return s.fs.Join(s.config.DocumentDir, s.config.Namespace), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrNoFilePath, err)
		}
		return s.fs.Join(home, "Documents", s.config.Namespace), nil

	default:
		return "", types.ErrNoFilePath
	}
}

// Remove deletes the file for key. Removing an absent key is not an error.
func (s *DiskStore) Remove(ctx context.Context, loc types.StorageLocation, key string) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	dir, err := s.resolveDir(loc)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(s.fs.Join(dir, filename(key))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return types.NewStoreError("Remove", key, "disk", err)
	}

	s.deletes.Add(1)
	return nil
}

// RemoveAll deletes the whole directory for a location.
func (s *DiskStore) RemoveAll(ctx context.Context, loc types.StorageLocation) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	dir, err := s.resolveDir(loc)
	if err != nil {
		return err
	}

	if err := util.RemoveAll(s.fs, dir); err != nil {
		return types.NewStoreError("RemoveAll", "", "disk", err)
	}
	return nil
}

// Flush blocks until every write queued before the call has been applied.
// It threads a barrier op through the queue, so the worker reaching it
// implies everything ahead of it has been drained.
func (s *DiskStore) Flush(ctx context.Context) error {
	if s.closed.Load() {
		return types.ErrClosed
	}

	done := make(chan struct{})
	select {
	case s.writeQueue <- writeOp{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker after draining queued writes.
func (s *DiskStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	close(s.stopCh)
	s.wg.Wait()

	return nil
}

// Stats returns disk tier statistics.
func (s *DiskStore) Stats() types.DiskCacheStats {
	return types.DiskCacheStats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Writes:        s.writes.Load(),
		WriteFailures: s.writeFailures.Load(),
		DroppedWrites: s.droppedWrites.Load(),
		Deletes:       s.deletes.Load(),
		PendingWrites: int(s.pendingWrites.Load()),
	}
}

// PendingWrites returns the number of queued writes not yet applied.
func (s *DiskStore) PendingWrites() int {
	return int(s.pendingWrites.Load())
}

// DroppedWrites returns the number of writes dropped due to a full queue.
func (s *DiskStore) DroppedWrites() int64 {
	return s.droppedWrites.Load()
}

// filename maps a store key to a flat on-disk name. Keys are URLs and
// other arbitrary strings, so the name is the hex SHA-256 of the key.
func filename(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

var _ types.DiskCacheLayer = (*DiskStore)(nil)
