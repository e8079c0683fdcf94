package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Load loads configuration from a JSON file.
// If the file doesn't exist, returns default configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, use defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnv loads configuration from a JSON file and applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//nolint:gocyclo // Environment variable parsing requires many conditional checks
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LARDER_API_SCHEME"); v != "" {
		cfg.API.Scheme = v
	}
	if v := os.Getenv("LARDER_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("LARDER_API_PORT"); v != "" {
		cfg.API.Port = parseInt(v, cfg.API.Port)
	}
	if v := os.Getenv("LARDER_API_TIMEOUT"); v != "" {
		cfg.API.Timeout = parseDuration(v, cfg.API.Timeout)
	}
	if v := os.Getenv("LARDER_API_CACHE_POLICY"); v != "" {
		cfg.API.CachePolicy = v
	}

	if v := os.Getenv("LARDER_MEMORY_ENABLED"); v != "" {
		cfg.Memory.Enabled = parseBool(v)
	}
	if v := os.Getenv("LARDER_MEMORY_MAX_SIZE_MB"); v != "" {
		cfg.Memory.MaxSizeMB = parseInt(v, cfg.Memory.MaxSizeMB)
	}
	if v := os.Getenv("LARDER_MEMORY_DEFAULT_TTL"); v != "" {
		cfg.Memory.DefaultTTL = parseDuration(v, cfg.Memory.DefaultTTL)
	}

	if v := os.Getenv("LARDER_DISK_ENABLED"); v != "" {
		cfg.Disk.Enabled = parseBool(v)
	}
	if v := os.Getenv("LARDER_DISK_CACHE_DIR"); v != "" {
		cfg.Disk.CacheDir = v
	}
	if v := os.Getenv("LARDER_DISK_DOCUMENT_DIR"); v != "" {
		cfg.Disk.DocumentDir = v
	}
	if v := os.Getenv("LARDER_DISK_NAMESPACE"); v != "" {
		cfg.Disk.Namespace = v
	}
	if v := os.Getenv("LARDER_DISK_MAX_PENDING_WRITES"); v != "" {
		cfg.Disk.MaxPendingWrites = parseInt(v, cfg.Disk.MaxPendingWrites)
	}
	if v := os.Getenv("LARDER_DISK_WRITE_TIMEOUT"); v != "" {
		cfg.Disk.WriteTimeout = parseDuration(v, cfg.Disk.WriteTimeout)
	}

	if v := os.Getenv("LARDER_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}

	if v := os.Getenv("DD_AGENT_HOST"); v != "" {
		cfg.Metrics.DataDog.AgentHost = v
		cfg.Metrics.DataDog.Enabled = true
	}
	if v := os.Getenv("DD_DOGSTATSD_PORT"); v != "" {
		cfg.Metrics.DataDog.Port = parseInt(v, cfg.Metrics.DataDog.Port)
	}
	if v := os.Getenv("DD_SERVICE"); v != "" {
		cfg.Metrics.DataDog.Prefix = v
	}
	if v := os.Getenv("DD_ENV"); v != "" {
		cfg.Metrics.DataDog.Tags = append(cfg.Metrics.DataDog.Tags, "env:"+v)
	}
	if v := os.Getenv("DD_VERSION"); v != "" {
		cfg.Metrics.DataDog.Tags = append(cfg.Metrics.DataDog.Tags, "version:"+v)
	}

	if v := os.Getenv("LARDER_DATADOG_ENABLED"); v != "" {
		if os.Getenv("DD_AGENT_HOST") == "" {
			cfg.Metrics.DataDog.Enabled = parseBool(v)
		}
	}
	if v := os.Getenv("LARDER_DATADOG_PREFIX"); v != "" {
		if os.Getenv("DD_SERVICE") == "" {
			cfg.Metrics.DataDog.Prefix = v
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.Scheme != "" && c.API.Scheme != "http" && c.API.Scheme != "https" {
		return fmt.Errorf("api.scheme must be http or https")
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be in [0, 65535]")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	if c.Memory.Enabled {
		if c.Memory.MaxSizeMB <= 0 {
			return fmt.Errorf("memory.maxSizeMB must be positive")
		}
		if c.Memory.Shards <= 0 || (c.Memory.Shards&(c.Memory.Shards-1)) != 0 {
			return fmt.Errorf("memory.shards must be a positive power of 2")
		}
	}

	if c.Disk.Enabled {
		if c.Disk.MaxPendingWrites <= 0 {
			return fmt.Errorf("disk.maxPendingWrites must be positive")
		}
		if c.Disk.WriteTimeout <= 0 {
			return fmt.Errorf("disk.writeTimeout must be positive")
		}
	}

	if c.KeyValidation.Enabled {
		if c.KeyValidation.MaxKeyLength <= 0 {
			return fmt.Errorf("keyValidation.maxKeyLength must be positive")
		}
	}

	return nil
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func parseInt(s string, defaultVal int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return v
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultVal
}
