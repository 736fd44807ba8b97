package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/codecollector/internal/filter"
)

// Default values
const (
	// Filter defaults
	DefaultExtensions = filter.DefaultExtensions

	// Remote defaults
	DefaultProxyURL = "https://corsproxy.io/?url="

	// Fetch defaults
	DefaultFetchTimeout   = 90 * time.Second
	DefaultMaxRetries     = 2
	DefaultMaxArchiveSize = "200MB"

	// Archive defaults
	DefaultMaxEntrySize = "10MB"

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 24 * time.Hour

	// Concurrency defaults
	DefaultWorkers = 8

	// Output defaults
	DefaultOutputDir = "."

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

const appDirName = ".codecollector"

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(home, appDirName)
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			Extensions: DefaultExtensions,
			ProcessAll: false,
		},
		Remote: RemoteConfig{
			ProxyURL: DefaultProxyURL,
		},
		Fetch: FetchConfig{
			Timeout:        DefaultFetchTimeout,
			MaxRetries:     DefaultMaxRetries,
			Stealth:        false,
			UserAgent:      "",
			MaxArchiveSize: DefaultMaxArchiveSize,
		},
		Archive: ArchiveConfig{
			MaxEntrySize: DefaultMaxEntrySize,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Output: OutputConfig{
			Directory:    DefaultOutputDir,
			Overwrite:    false,
			JSONMetadata: false,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
