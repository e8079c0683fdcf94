package types

import (
	"errors"
	"fmt"
)

var (
	ErrCacheMiss       = errors.New("store: key not found in memory cache")
	ErrNoFilePath      = errors.New("store: no resolvable directory for storage location")
	ErrFileNotFound    = errors.New("store: file not found")
	ErrClosed          = errors.New("store: store closed")
	ErrWriteQueueFull  = errors.New("store: disk write queue full")
	ErrInvalidKey      = errors.New("store: invalid key")
	ErrShutdownTimeout = errors.New("store: shutdown timeout waiting for pending writes")

	ErrInvalidURL    = errors.New("api: invalid request URL")
	ErrBadResponse   = errors.New("api: empty response body")
	ErrInvalidJSON   = errors.New("api: malformed JSON in response body")
	ErrInvalidFormat = errors.New("api: unexpected top-level JSON shape")
	ErrNoData        = errors.New("api: response carried no data")
)

type StoreError struct {
	Op    string
	Key   string
	Layer string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s on %s [%s]: %v", e.Op, e.Layer, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s on %s: %v", e.Op, e.Layer, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op, key, layer string, err error) *StoreError {
	return &StoreError{
		Op:    op,
		Key:   key,
		Layer: layer,
		Err:   err,
	}
}

func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

func IsNoFilePath(err error) bool {
	return errors.Is(err, ErrNoFilePath)
}
