package testutil

import (
	"testing"

	"github.com/quantmind-br/codecollector/internal/cache"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/stretchr/testify/require"
)

// NewBadgerCache creates an in-memory BadgerDB cache for testing
func NewBadgerCache(t *testing.T) domain.Cache {
	t.Helper()

	c, err := cache.NewBadgerCache(cache.Options{
		InMemory: true,
		Logger:   false,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
	})

	return c
}
