package app

import (
	"errors"
	"fmt"

	"github.com/quantmind-br/codecollector/internal/cache"
	"github.com/quantmind-br/codecollector/internal/config"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/fetcher"
	"github.com/quantmind-br/codecollector/internal/output"
	"github.com/quantmind-br/codecollector/internal/remote"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// Dependencies holds the shared services built from configuration
type Dependencies struct {
	Cache        domain.Cache
	Fetcher      *fetcher.Client
	Resolver     *remote.Resolver
	Writer       *output.Writer
	Orchestrator *Orchestrator
	Logger       *utils.Logger
}

// DependencyOptions carries per-invocation switches that are not part of the config file
type DependencyOptions struct {
	Config   *config.Config
	Logger   *utils.Logger
	NoCache  bool
	DryRun   bool
	Progress ProgressFactory
}

// NewDependencies wires cache, fetcher, resolver, writer and orchestrator
func NewDependencies(opts DependencyOptions) (*Dependencies, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	}

	var cacheImpl domain.Cache
	cacheEnabled := cfg.Cache.Enabled && !opts.NoCache
	if cacheEnabled {
		dir := cfg.Cache.Directory
		if dir == "" {
			dir = config.CacheDir()
		}
		c, err := cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(dir)})
		if err != nil {
			// A locked or unreadable cache only costs a re-download.
			logger.Warn().Err(err).Str("directory", dir).Msg("Cache unavailable, continuing without it")
			cacheEnabled = false
		} else {
			cacheImpl = c
		}
	}

	client, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:     cfg.Fetch.Timeout,
		MaxRetries:  cfg.Fetch.MaxRetries,
		EnableCache: cacheEnabled,
		CacheTTL:    cfg.Cache.TTL,
		Cache:       cacheImpl,
		UserAgent:   cfg.Fetch.UserAgent,
		Stealth:     cfg.Fetch.Stealth,
		MaxBodySize: cfg.MaxArchiveBytes(),
		Logger:      logger,
	})
	if err != nil {
		if cacheImpl != nil {
			_ = cacheImpl.Close()
		}
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	resolver := remote.NewResolver(remote.ResolverOptions{
		Fetcher:  client,
		ProxyURL: cfg.Remote.ProxyURL,
		Logger:   logger,
	})

	writer := output.NewWriter(output.WriterOptions{
		BaseDir:      cfg.Output.Directory,
		JSONMetadata: cfg.Output.JSONMetadata,
		Force:        cfg.Output.Overwrite,
		DryRun:       opts.DryRun,
		Logger:       logger,
	})

	orch := NewOrchestrator(OrchestratorOptions{
		Resolver:     resolver,
		MaxEntrySize: cfg.MaxEntryBytes(),
		Workers:      cfg.Concurrency.Workers,
		Progress:     opts.Progress,
		Logger:       logger,
	})

	return &Dependencies{
		Cache:        cacheImpl,
		Fetcher:      client,
		Resolver:     resolver,
		Writer:       writer,
		Orchestrator: orch,
		Logger:       logger,
	}, nil
}

// Close releases the fetcher and the cache
func (d *Dependencies) Close() error {
	var errs []error
	if d.Fetcher != nil {
		if err := d.Fetcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
