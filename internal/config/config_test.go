package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("api defaults", func(t *testing.T) {
		if cfg.API.Scheme != "https" {
			t.Errorf("API.Scheme = %s, want https", cfg.API.Scheme)
		}
		if cfg.API.Timeout != 10*time.Second {
			t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
		}
		if cfg.API.CachePolicy != "default" {
			t.Errorf("API.CachePolicy = %s, want default", cfg.API.CachePolicy)
		}
		if cfg.API.Port != 0 {
			t.Errorf("API.Port = %d, want 0", cfg.API.Port)
		}
	})

	t.Run("memory defaults", func(t *testing.T) {
		if !cfg.Memory.Enabled {
			t.Error("Memory.Enabled = false, want true")
		}
		if cfg.Memory.MaxSizeMB != 64 {
			t.Errorf("Memory.MaxSizeMB = %d, want 64", cfg.Memory.MaxSizeMB)
		}
		if cfg.Memory.DefaultTTL != 5*time.Minute {
			t.Errorf("Memory.DefaultTTL = %v, want 5m", cfg.Memory.DefaultTTL)
		}
		if cfg.Memory.Shards != 1024 {
			t.Errorf("Memory.Shards = %d, want 1024", cfg.Memory.Shards)
		}
	})

	t.Run("disk defaults", func(t *testing.T) {
		if !cfg.Disk.Enabled {
			t.Error("Disk.Enabled = false, want true")
		}
		if cfg.Disk.CacheDir != "" {
			t.Errorf("Disk.CacheDir = %s, want empty (platform resolution)", cfg.Disk.CacheDir)
		}
		if cfg.Disk.Namespace != "larder" {
			t.Errorf("Disk.Namespace = %s, want larder", cfg.Disk.Namespace)
		}
		if cfg.Disk.MaxPendingWrites != 500 {
			t.Errorf("Disk.MaxPendingWrites = %d, want 500", cfg.Disk.MaxPendingWrites)
		}
	})

	t.Run("metrics defaults", func(t *testing.T) {
		if !cfg.Metrics.Enabled {
			t.Error("Metrics.Enabled = false, want true")
		}
		if cfg.Metrics.DataDog.Enabled {
			t.Error("Metrics.DataDog.Enabled = true, want false")
		}
		if cfg.Metrics.DataDog.Port != 8125 {
			t.Errorf("Metrics.DataDog.Port = %d, want 8125", cfg.Metrics.DataDog.Port)
		}
	})

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

func TestForTesting(t *testing.T) {
	cfg := ForTesting()

	if cfg.Disk.Enabled {
		t.Error("Disk.Enabled = true, want false for unit tests")
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false for unit tests")
	}
	if cfg.Memory.MaxSizeMB != 16 {
		t.Errorf("Memory.MaxSizeMB = %d, want 16", cfg.Memory.MaxSizeMB)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestForTestingWithDisk(t *testing.T) {
	cfg := ForTestingWithDisk("/tmp/larder")

	if !cfg.Disk.Enabled {
		t.Error("Disk.Enabled = false, want true")
	}
	if cfg.Disk.CacheDir != "/tmp/larder/cache" {
		t.Errorf("Disk.CacheDir = %s, want /tmp/larder/cache", cfg.Disk.CacheDir)
	}
	if cfg.Disk.DocumentDir != "/tmp/larder/documents" {
		t.Errorf("Disk.DocumentDir = %s, want /tmp/larder/documents", cfg.Disk.DocumentDir)
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		// Should have default values
		if cfg.Memory.MaxSizeMB != 64 {
			t.Errorf("Memory.MaxSizeMB = %d, want 64", cfg.Memory.MaxSizeMB)
		}
	})

	t.Run("non-existent file returns defaults", func(t *testing.T) {
		cfg, err := Load("/non/existent/path/config.json")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		// Should have default values
		if cfg.Memory.MaxSizeMB != 64 {
			t.Errorf("Memory.MaxSizeMB = %d, want 64", cfg.Memory.MaxSizeMB)
		}
	})

	t.Run("loads valid JSON file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		jsonContent := `{
			"api": {
				"scheme": "https",
				"host": "api.example.com",
				"port": 8443
			},
			"memory": {
				"enabled": true,
				"maxSizeMB": 512,
				"shards": 512
			},
			"disk": {
				"enabled": true,
				"cacheDir": "/var/cache/app",
				"maxPendingWrites": 100,
				"writeTimeout": 1000000000
			}
		}`

		if err := os.WriteFile(configPath, []byte(jsonContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.API.Host != "api.example.com" {
			t.Errorf("API.Host = %s, want api.example.com", cfg.API.Host)
		}
		if cfg.API.Port != 8443 {
			t.Errorf("API.Port = %d, want 8443", cfg.API.Port)
		}
		if cfg.Memory.MaxSizeMB != 512 {
			t.Errorf("Memory.MaxSizeMB = %d, want 512", cfg.Memory.MaxSizeMB)
		}
		if cfg.Disk.CacheDir != "/var/cache/app" {
			t.Errorf("Disk.CacheDir = %s, want /var/cache/app", cfg.Disk.CacheDir)
		}
		if cfg.Disk.MaxPendingWrites != 100 {
			t.Errorf("Disk.MaxPendingWrites = %d, want 100", cfg.Disk.MaxPendingWrites)
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.json")

		if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := Load(configPath)
		if err == nil {
			t.Error("Load() error = nil, want error")
		}
	})

	t.Run("returns error for invalid config values", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid-values.json")

		// Invalid: shards not power of 2
		jsonContent := `{
			"memory": {
				"enabled": true,
				"maxSizeMB": 100,
				"shards": 100
			}
		}`

		if err := os.WriteFile(configPath, []byte(jsonContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := Load(configPath)
		if err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("applies environment overrides", func(t *testing.T) {
		os.Setenv("LARDER_API_HOST", "api.env.example.com")
		os.Setenv("LARDER_DISK_ENABLED", "false")
		os.Setenv("LARDER_MEMORY_MAX_SIZE_MB", "128")
		defer func() {
			os.Unsetenv("LARDER_API_HOST")
			os.Unsetenv("LARDER_DISK_ENABLED")
			os.Unsetenv("LARDER_MEMORY_MAX_SIZE_MB")
		}()

		cfg, err := LoadWithEnv("")
		if err != nil {
			t.Fatalf("LoadWithEnv() error = %v", err)
		}

		if cfg.API.Host != "api.env.example.com" {
			t.Errorf("API.Host = %s, want api.env.example.com", cfg.API.Host)
		}
		if cfg.Disk.Enabled {
			t.Error("Disk.Enabled = true, want false")
		}
		if cfg.Memory.MaxSizeMB != 128 {
			t.Errorf("Memory.MaxSizeMB = %d, want 128", cfg.Memory.MaxSizeMB)
		}
	})

	t.Run("env overrides JSON file values", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		jsonContent := `{
			"api": {
				"host": "api.json.example.com"
			}
		}`

		if err := os.WriteFile(configPath, []byte(jsonContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		// Environment should override JSON
		os.Setenv("LARDER_API_HOST", "api.override.example.com")
		defer os.Unsetenv("LARDER_API_HOST")

		cfg, err := LoadWithEnv(configPath)
		if err != nil {
			t.Fatalf("LoadWithEnv() error = %v", err)
		}

		if cfg.API.Host != "api.override.example.com" {
			t.Errorf("API.Host = %s, want api.override.example.com", cfg.API.Host)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("api.scheme must be http or https", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.API.Scheme = "ftp"

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("api.port must be in range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.API.Port = 70000

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("memory.maxSizeMB must be positive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Memory.MaxSizeMB = 0

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("memory.shards must be power of 2", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Memory.Shards = 100

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("disabled memory skips memory checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Memory.Enabled = false
		cfg.Memory.MaxSizeMB = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("disk.maxPendingWrites must be positive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Disk.MaxPendingWrites = 0

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("disabled disk skips disk checks", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Disk.Enabled = false
		cfg.Disk.MaxPendingWrites = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("keyValidation.maxKeyLength must be positive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.KeyValidation.MaxKeyLength = 0

		if err := cfg.Validate(); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{" true ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseBool(tt.input); got != tt.expected {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input      string
		defaultVal int
		expected   int
	}{
		{"42", 0, 42},
		{" 42 ", 0, 42},
		{"-7", 0, -7},
		{"garbage", 13, 13},
		{"", 13, 13},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseInt(tt.input, tt.defaultVal); got != tt.expected {
				t.Errorf("parseInt(%q, %d) = %d, want %d", tt.input, tt.defaultVal, got, tt.expected)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input      string
		defaultVal time.Duration
		expected   time.Duration
	}{
		{"5s", 0, 5 * time.Second},
		{"2m", 0, 2 * time.Minute},
		{"150ms", 0, 150 * time.Millisecond},
		{"30", 0, 30 * time.Second}, // bare integer means seconds
		{"garbage", time.Minute, time.Minute},
		{"", time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseDuration(tt.input, tt.defaultVal); got != tt.expected {
				t.Errorf("parseDuration(%q, %v) = %v, want %v", tt.input, tt.defaultVal, got, tt.expected)
			}
		})
	}
}
