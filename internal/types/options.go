package types

import "github.com/go-git/go-billy/v5"

// StoreOptions holds construction-time overrides for the store.
type StoreOptions struct {
	// Logger is the structured logger to use.
	Logger Logger

	// Metrics is the metrics recorder.
	Metrics MetricsRecorder

	// Filesystem overrides the disk tier's filesystem. Tests inject a
	// memfs here; production resolves to the local filesystem.
	Filesystem billy.Filesystem

	// MemoryLayer overrides the memory tier implementation.
	MemoryLayer MemoryCacheLayer

	// DiskLayer overrides the disk tier implementation.
	DiskLayer DiskCacheLayer

	// DisableDisk disables the disk tier entirely.
	DisableDisk bool
}
