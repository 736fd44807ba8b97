package domain

import (
	"context"
	"time"
)

// Fetcher retrieves a URL. Non-2xx statuses are returned as responses;
// only transport failures are errors.
type Fetcher interface {
	Get(ctx context.Context, url string) (*Response, error)
	Close() error
}

// Cache defines the interface for content caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
