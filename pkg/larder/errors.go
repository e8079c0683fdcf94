package larder

import (
	"github.com/LavishGent/larder/internal/types"
)

// StoreError represents a store operation error.
type StoreError = types.StoreError

var (
	// ErrCacheMiss indicates that a requested key was not found in the memory tier.
	ErrCacheMiss = types.ErrCacheMiss
	// ErrNoFilePath indicates that a storage location has no resolvable directory.
	ErrNoFilePath = types.ErrNoFilePath
	// ErrFileNotFound indicates that no file backs the key on disk.
	ErrFileNotFound = types.ErrFileNotFound
	// ErrClosed indicates that the store has been closed.
	ErrClosed = types.ErrClosed
	// ErrWriteQueueFull indicates that the disk write queue is full.
	ErrWriteQueueFull = types.ErrWriteQueueFull
	// ErrInvalidKey indicates that a cache key is invalid.
	ErrInvalidKey = types.ErrInvalidKey
	// ErrShutdownTimeout indicates that shutdown gave up waiting for background work.
	ErrShutdownTimeout = types.ErrShutdownTimeout

	// ErrInvalidURL indicates malformed request composition.
	ErrInvalidURL = types.ErrInvalidURL
	// ErrBadResponse indicates an empty network response.
	ErrBadResponse = types.ErrBadResponse
	// ErrInvalidJSON indicates a malformed response body.
	ErrInvalidJSON = types.ErrInvalidJSON
	// ErrInvalidFormat indicates valid JSON with an unexpected top-level shape.
	ErrInvalidFormat = types.ErrInvalidFormat
	// ErrNoData indicates a response that carried no data.
	ErrNoData = types.ErrNoData
)

// NewStoreError creates a new store error with operation, key, layer, and underlying error.
func NewStoreError(op, key, layer string, err error) *StoreError {
	return types.NewStoreError(op, key, layer, err)
}

// IsCacheMiss returns true if the error is a memory-tier miss.
func IsCacheMiss(err error) bool {
	return types.IsCacheMiss(err)
}

// IsFileNotFound returns true if the error is a disk-tier miss.
func IsFileNotFound(err error) bool {
	return types.IsFileNotFound(err)
}

// IsNoFilePath returns true if the error indicates an unresolvable directory.
func IsNoFilePath(err error) bool {
	return types.IsNoFilePath(err)
}
