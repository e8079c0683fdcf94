// Package config provides configuration management for larder.
package config

import (
	"time"

	"github.com/LavishGent/larder/internal/types"
)

// Config contains all configuration for the larder data-access layer.
//
//nolint:govet // Configuration struct - logical grouping prioritized over alignment
type Config struct {
	API           APIConfig           `json:"api"`
	Memory        MemoryConfig        `json:"memory"`
	Disk          DiskConfig          `json:"disk"`
	Metrics       MetricsConfig       `json:"metrics"`
	KeyValidation KeyValidationConfig `json:"keyValidation"`
}

// APIConfig contains configuration for the HTTP API client. Scheme, host,
// optional port, timeout, and cache policy together form the request domain.
type APIConfig struct {
	Timeout     time.Duration `json:"timeout"`
	Scheme      string        `json:"scheme"`
	Host        string        `json:"host"`
	UserAgent   string        `json:"userAgent"`
	CachePolicy string        `json:"cachePolicy"`
	Port        int           `json:"port"`
}

// MemoryConfig contains configuration for the memory cache tier.
type MemoryConfig struct {
	DefaultTTL      time.Duration `json:"defaultTTL"`
	CleanupInterval time.Duration `json:"cleanupInterval"`
	MaxSizeMB       int           `json:"maxSizeMB"`
	Shards          int           `json:"shards"`
	MaxEntrySize    int           `json:"maxEntrySize"`
	Enabled         bool          `json:"enabled"`
	Verbose         bool          `json:"verbose"`
}

// DiskConfig contains configuration for the disk tier. Empty CacheDir or
// DocumentDir means "resolve the platform directory at call time"; the
// Namespace is appended as the final path element either way.
//
//nolint:govet // Configuration struct - logical grouping prioritized over alignment
type DiskConfig struct {
	WriteTimeout     time.Duration `json:"writeTimeout"`
	CacheDir         string        `json:"cacheDir"`
	DocumentDir      string        `json:"documentDir"`
	Namespace        string        `json:"namespace"`
	MaxPendingWrites int           `json:"maxPendingWrites"`
	Enabled          bool          `json:"enabled"`
}

// KeyValidationConfig contains configuration for store key validation.
type KeyValidationConfig struct {
	ReservedPatterns  []string `json:"reservedPatterns"`
	MaxKeyLength      int      `json:"maxKeyLength"`
	Enabled           bool     `json:"enabled"`
	AllowEmpty        bool     `json:"allowEmpty"`
	AllowControlChars bool     `json:"allowControlChars"`
	AllowWhitespace   bool     `json:"allowWhitespace"`
}

// ToTypesConfig converts this config to a types.KeyValidationConfig.
func (c KeyValidationConfig) ToTypesConfig() types.KeyValidationConfig {
	return types.KeyValidationConfig{
		MaxKeyLength:      c.MaxKeyLength,
		AllowEmpty:        c.AllowEmpty,
		AllowControlChars: c.AllowControlChars,
		AllowWhitespace:   c.AllowWhitespace,
		ReservedPatterns:  c.ReservedPatterns,
	}
}

// MetricsConfig contains configuration for metrics publishing.
//
//nolint:govet // Small config struct - minimal alignment benefit
type MetricsConfig struct {
	PublishInterval time.Duration `json:"publishInterval"`
	DataDog         DataDogConfig `json:"datadog"`
	Enabled         bool          `json:"enabled"`
}

// DataDogConfig contains configuration for DataDog metrics publishing.
//
//nolint:govet // Small config struct - minimal alignment benefit
type DataDogConfig struct {
	Tags                   []string `json:"tags"`
	AgentHost              string   `json:"agentHost"`
	Prefix                 string   `json:"prefix"`
	Port                   int      `json:"port"`
	PublishIntervalSeconds int      `json:"publishIntervalSeconds"`
	Enabled                bool     `json:"enabled"`
}
