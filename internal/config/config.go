package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/codecollector/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Filter      FilterConfig      `mapstructure:"filter" yaml:"filter"`
	Remote      RemoteConfig      `mapstructure:"remote" yaml:"remote"`
	Fetch       FetchConfig       `mapstructure:"fetch" yaml:"fetch"`
	Archive     ArchiveConfig     `mapstructure:"archive" yaml:"archive"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// FilterConfig holds the default extension selection
type FilterConfig struct {
	Extensions string `mapstructure:"extensions" yaml:"extensions"`
	ProcessAll bool   `mapstructure:"process_all" yaml:"process_all"`
}

// RemoteConfig contains repository download settings
type RemoteConfig struct {
	// ProxyURL is prepended to the query-escaped archive URL; empty fetches directly
	ProxyURL string `mapstructure:"proxy_url" yaml:"proxy_url"`
}

// FetchConfig contains HTTP client settings
type FetchConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries     int           `mapstructure:"max_retries" yaml:"max_retries"`
	Stealth        bool          `mapstructure:"stealth" yaml:"stealth"`
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxArchiveSize string        `mapstructure:"max_archive_size" yaml:"max_archive_size"`
}

// ArchiveConfig contains zip decoding limits
type ArchiveConfig struct {
	MaxEntrySize string `mapstructure:"max_entry_size" yaml:"max_entry_size"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory    string `mapstructure:"directory" yaml:"directory"`
	Overwrite    bool   `mapstructure:"overwrite" yaml:"overwrite"`
	JSONMetadata bool   `mapstructure:"json_metadata" yaml:"json_metadata"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, replacing out-of-range values with defaults
func (c *Config) Validate() error {
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Fetch.Timeout < time.Second {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	if c.Fetch.MaxRetries < 0 {
		c.Fetch.MaxRetries = 0
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if c.Fetch.MaxArchiveSize == "" {
		c.Fetch.MaxArchiveSize = DefaultMaxArchiveSize
	} else if _, err := ParseSize(c.Fetch.MaxArchiveSize); err != nil {
		return domain.NewValidationError("fetch.max_archive_size", err.Error())
	}

	if c.Archive.MaxEntrySize == "" {
		c.Archive.MaxEntrySize = DefaultMaxEntrySize
	} else if _, err := ParseSize(c.Archive.MaxEntrySize); err != nil {
		return domain.NewValidationError("archive.max_entry_size", err.Error())
	}

	return nil
}

// MaxArchiveBytes returns fetch.max_archive_size in bytes
func (c *Config) MaxArchiveBytes() int64 {
	n, _ := ParseSize(c.Fetch.MaxArchiveSize)
	return n
}

// MaxEntryBytes returns archive.max_entry_size in bytes
func (c *Config) MaxEntryBytes() int64 {
	n, _ := ParseSize(c.Archive.MaxEntrySize)
	return n
}

// ParseSize parses sizes such as "10MB", "512kb" or "2048". "0" means unlimited.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var multiplier int64 = 1
	if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	} else if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("no numeric value in size string")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %w", err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative size not allowed")
	}

	return n * multiplier, nil
}
