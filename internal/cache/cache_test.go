package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{"identical", "https://github.com/a/b/archive/refs/heads/main.zip", "https://github.com/a/b/archive/refs/heads/main.zip", true},
		{"host case", "https://GitHub.com/a/b", "https://github.com/a/b", true},
		{"default port", "https://github.com:443/a/b", "https://github.com/a/b", true},
		{"trailing slash", "https://github.com/a/b/", "https://github.com/a/b", true},
		{"fragment", "https://github.com/a/b#readme", "https://github.com/a/b", true},
		{"different branch", "https://github.com/a/b/archive/refs/heads/main.zip", "https://github.com/a/b/archive/refs/heads/master.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := GenerateKey(tt.a), GenerateKey(tt.b)
			assert.Len(t, ka, 64)
			if tt.same {
				assert.Equal(t, ka, kb)
			} else {
				assert.NotEqual(t, ka, kb)
			}
		})
	}
}

func TestArchiveKey(t *testing.T) {
	key := ArchiveKey("https://github.com/a/b/archive/refs/heads/main.zip")
	assert.Equal(t, PrefixArchive+":"+GenerateKey("https://github.com/a/b/archive/refs/heads/main.zip"), key)
}

func TestNewBadgerCache(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		c, err := NewBadgerCache(Options{InMemory: true})
		require.NoError(t, err)
		assert.NoError(t, c.Close())
	})

	t.Run("explicit directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "cache")
		c, err := NewBadgerCache(Options{Directory: dir})
		require.NoError(t, err)
		defer c.Close()

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("default directory under home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		c, err := NewBadgerCache(DefaultOptions())
		require.NoError(t, err)
		defer c.Close()

		_, err = os.Stat(filepath.Join(home, DefaultDirectory))
		assert.NoError(t, err)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		c, err := NewBadgerCache(Options{Directory: t.TempDir()})
		require.NoError(t, err)
		assert.NoError(t, c.Close())
		assert.NoError(t, c.Close())
	})
}

func TestBadgerCache_RoundTrip(t *testing.T) {
	c := newMemCache(t)
	ctx := context.Background()
	key := ArchiveKey("https://github.com/a/b/archive/refs/heads/main.zip")

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.False(t, c.Has(ctx, key))

	require.NoError(t, c.Set(ctx, key, []byte("PK\x03\x04"), time.Hour))
	assert.True(t, c.Has(ctx, key))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), got)

	require.NoError(t, c.Delete(ctx, key))
	assert.False(t, c.Has(ctx, key))
}

func TestBadgerCache_Overwrite(t *testing.T) {
	c := newMemCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("one"), 0))
	require.NoError(t, c.Set(ctx, "k", []byte("two"), 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
	assert.Equal(t, int64(1), c.Size())
}

func TestBadgerCache_Clear(t *testing.T) {
	c := newMemCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Hour))
	}
	assert.Equal(t, int64(3), c.Size())

	require.NoError(t, c.Clear())
	assert.Equal(t, int64(0), c.Size())
}

func TestBadgerCache_CanceledContext(t *testing.T) {
	c := newMemCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), 0), context.Canceled)
	assert.ErrorIs(t, c.Delete(ctx, "k"), context.Canceled)
	assert.False(t, c.Has(ctx, "k"))
}

func TestBadgerCache_ConcurrentAccess(t *testing.T) {
	c := newMemCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("https://example.com/archive-%d.zip", i)
			_ = c.Set(ctx, key, []byte("content"), time.Hour)
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), c.Size())
}
