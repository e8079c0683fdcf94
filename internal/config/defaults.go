package config

import "time"

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Scheme:      "https",
			Host:        "",
			Port:        0,
			Timeout:     10 * time.Second,
			CachePolicy: "default",
			UserAgent:   "larder/1.0",
		},
		Memory: MemoryConfig{
			Enabled:         true,
			MaxSizeMB:       64,
			DefaultTTL:      5 * time.Minute,
			CleanupInterval: 10 * time.Second,
			Shards:          1024,
			MaxEntrySize:    10 * 1024 * 1024, // 10MB
			Verbose:         false,
		},
		Disk: DiskConfig{
			Enabled:          true,
			CacheDir:         "",
			DocumentDir:      "",
			Namespace:        "larder",
			MaxPendingWrites: 500,
			WriteTimeout:     5 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:         true,
			PublishInterval: 10 * time.Second,
			DataDog: DataDogConfig{
				Enabled:                false,
				AgentHost:              "127.0.0.1",
				Port:                   8125,
				Prefix:                 "larder",
				Tags:                   []string{},
				PublishIntervalSeconds: 30,
			},
		},
		KeyValidation: KeyValidationConfig{
			Enabled:           true,
			MaxKeyLength:      2048,
			AllowEmpty:        false,
			AllowControlChars: false,
			AllowWhitespace:   true,
		},
	}
}

// ForTesting returns a minimal configuration suitable for unit tests. The
// disk tier is rooted at fixed paths so tests can pair it with an in-memory
// filesystem.
func ForTesting() *Config {
	return &Config{
		API: APIConfig{
			Scheme:      "http",
			Host:        "localhost",
			Timeout:     1 * time.Second,
			CachePolicy: "default",
			UserAgent:   "larder-test/1.0",
		},
		Memory: MemoryConfig{
			Enabled:         true,
			MaxSizeMB:       16,
			DefaultTTL:      1 * time.Minute,
			CleanupInterval: 1 * time.Second,
			Shards:          64,
			MaxEntrySize:    1024 * 1024, // 1MB
			Verbose:         false,
		},
		Disk: DiskConfig{
			Enabled:          false, // Disabled for unit tests
			CacheDir:         "/cache",
			DocumentDir:      "/documents",
			Namespace:        "larder-test",
			MaxPendingWrites: 50,
			WriteTimeout:     1 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:         false,
			PublishInterval: 1 * time.Second,
		},
		KeyValidation: KeyValidationConfig{
			Enabled:           true,
			MaxKeyLength:      2048,
			AllowEmpty:        false,
			AllowControlChars: false,
			AllowWhitespace:   true,
		},
	}
}

// ForTestingWithDisk returns a test config with the disk tier enabled,
// rooted under dir.
func ForTestingWithDisk(dir string) *Config {
	cfg := ForTesting()
	cfg.Disk.Enabled = true
	cfg.Disk.CacheDir = dir + "/cache"
	cfg.Disk.DocumentDir = dir + "/documents"
	return cfg
}
