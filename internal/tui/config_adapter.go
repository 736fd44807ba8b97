package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quantmind-br/codecollector/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	Extensions string
	ProcessAll bool

	ProxyURL string

	FetchTimeout   string
	MaxRetries     string
	Stealth        bool
	UserAgent      string
	MaxArchiveSize string

	MaxEntrySize string

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string

	Workers string

	OutputDirectory string
	OutputOverwrite bool
	JSONMetadata    bool

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		Extensions: cfg.Filter.Extensions,
		ProcessAll: cfg.Filter.ProcessAll,

		ProxyURL: cfg.Remote.ProxyURL,

		FetchTimeout:   formatDuration(cfg.Fetch.Timeout),
		MaxRetries:     strconv.Itoa(cfg.Fetch.MaxRetries),
		Stealth:        cfg.Fetch.Stealth,
		UserAgent:      cfg.Fetch.UserAgent,
		MaxArchiveSize: cfg.Fetch.MaxArchiveSize,

		MaxEntrySize: cfg.Archive.MaxEntrySize,

		CacheEnabled:   cfg.Cache.Enabled,
		CacheTTL:       formatDuration(cfg.Cache.TTL),
		CacheDirectory: cfg.Cache.Directory,

		Workers: strconv.Itoa(cfg.Concurrency.Workers),

		OutputDirectory: cfg.Output.Directory,
		OutputOverwrite: cfg.Output.Overwrite,
		JSONMetadata:    cfg.Output.JSONMetadata,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	fetchTimeout, err := parseDurationOrDefault(v.FetchTimeout, config.DefaultFetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch timeout: %w", err)
	}

	maxRetries, err := parseIntOrDefault(v.MaxRetries, config.DefaultMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("invalid max_retries: %w", err)
	}

	cacheTTL, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	workers, err := parseIntOrDefault(v.Workers, config.DefaultWorkers)
	if err != nil {
		return nil, fmt.Errorf("invalid workers: %w", err)
	}

	cfg := &config.Config{
		Filter: config.FilterConfig{
			Extensions: v.Extensions,
			ProcessAll: v.ProcessAll,
		},
		Remote: config.RemoteConfig{
			ProxyURL: v.ProxyURL,
		},
		Fetch: config.FetchConfig{
			Timeout:        fetchTimeout,
			MaxRetries:     maxRetries,
			Stealth:        v.Stealth,
			UserAgent:      v.UserAgent,
			MaxArchiveSize: v.MaxArchiveSize,
		},
		Archive: config.ArchiveConfig{
			MaxEntrySize: v.MaxEntrySize,
		},
		Cache: config.CacheConfig{
			Enabled:   v.CacheEnabled,
			TTL:       cacheTTL,
			Directory: v.CacheDirectory,
		},
		Concurrency: config.ConcurrencyConfig{
			Workers: workers,
		},
		Output: config.OutputConfig{
			Directory:    v.OutputDirectory,
			Overwrite:    v.OutputOverwrite,
			JSONMetadata: v.JSONMetadata,
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
