package fetcher_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantmind-br/codecollector/internal/cache"
	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/fetcher"
	"github.com/quantmind-br/codecollector/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, mutate func(*fetcher.ClientOptions)) *fetcher.Client {
	t.Helper()
	opts := fetcher.DefaultClientOptions()
	opts.EnableCache = false
	opts.RetryInterval = time.Millisecond
	opts.Timeout = 5 * time.Second
	opts.Logger = testutil.NewTestLogger(t)
	if mutate != nil {
		mutate(&opts)
	}
	c, err := fetcher.NewClient(opts)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDefaultClientOptions(t *testing.T) {
	opts := fetcher.DefaultClientOptions()
	assert.Equal(t, 90*time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.MaxRetries)
	assert.True(t, opts.EnableCache)
	assert.Equal(t, 24*time.Hour, opts.CacheTTL)
	assert.False(t, opts.Stealth)
}

func TestNewClient_Stealth(t *testing.T) {
	c, err := fetcher.NewClient(fetcher.ClientOptions{Stealth: true, Timeout: 10 * time.Second})
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestClient_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	zip := testutil.SampleRepoZip(t)
	ts.HandleZip(t, "/repo.zip", zip)
	ts.HandleHTML(t, "/page", "<html>blocked</html>")
	ts.Handle404(t, "/missing.zip")

	c := newClient(t, nil)
	ctx := context.Background()

	t.Run("returns archive body", func(t *testing.T) {
		resp, err := c.Get(ctx, ts.URL+"/repo.zip")
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.Equal(t, zip, resp.Body)
		assert.Equal(t, "application/zip", resp.ContentType)
		assert.False(t, resp.FromCache)
	})

	t.Run("non-2xx is a response not an error", func(t *testing.T) {
		resp, err := c.Get(ctx, ts.URL+"/missing.zip")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.False(t, resp.OK())
	})

	t.Run("html is reported", func(t *testing.T) {
		resp, err := c.Get(ctx, ts.URL+"/page")
		require.NoError(t, err)
		assert.True(t, fetcher.IsHTML(resp))
	})
}

func TestClient_Get_SendsBrowserHeaders(t *testing.T) {
	ts := testutil.NewTestServer(t)
	var ua, accept atomic.Value
	ts.Handle(t, "/a.zip", func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		accept.Store(r.Header.Get("Accept"))
		w.WriteHeader(http.StatusOK)
	})

	c := newClient(t, func(o *fetcher.ClientOptions) { o.UserAgent = "codecollector-test" })
	_, err := c.Get(context.Background(), ts.URL+"/a.zip")
	require.NoError(t, err)

	assert.Equal(t, "codecollector-test", ua.Load())
	assert.Contains(t, accept.Load(), "application/zip")
}

func TestClient_Get_TransportFailure(t *testing.T) {
	c := newClient(t, nil)

	_, err := c.Get(context.Background(), "http://127.0.0.1:1/unreachable.zip")
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 0, fetchErr.StatusCode)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Get_TimeoutIsRetried(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Handle(t, "/slow.zip", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c := newClient(t, func(o *fetcher.ClientOptions) {
		o.MaxRetries = 1
		o.HTTPClient = &http.Client{Timeout: 50 * time.Millisecond}
	})

	_, err := c.Get(context.Background(), ts.URL+"/slow.zip")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Equal(t, int64(2), ts.Requests())
}

func TestClient_Get_RetriesThenReturnsLastResponse(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Handle(t, "/busy.zip", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := newClient(t, func(o *fetcher.ClientOptions) { o.MaxRetries = 2 })
	resp, err := c.Get(context.Background(), ts.URL+"/busy.zip")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int64(3), ts.Requests())
}

func TestClient_Get_RetryRecovers(t *testing.T) {
	ts := testutil.NewTestServer(t)
	var calls atomic.Int32
	ts.Handle(t, "/flaky.zip", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write([]byte("ok"))
	})

	c := newClient(t, func(o *fetcher.ClientOptions) { o.MaxRetries = 3 })
	resp, err := c.Get(context.Background(), ts.URL+"/flaky.zip")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Get_NoRetryOn404(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Handle404(t, "/missing.zip")

	c := newClient(t, func(o *fetcher.ClientOptions) { o.MaxRetries = 3 })
	_, err := c.Get(context.Background(), ts.URL+"/missing.zip")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ts.Requests())
}

func TestClient_Get_MaxBodySize(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.HandleZip(t, "/big.zip", make([]byte, 2048))

	c := newClient(t, func(o *fetcher.ClientOptions) { o.MaxBodySize = 1024 })
	_, err := c.Get(context.Background(), ts.URL+"/big.zip")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTooLarge)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Get_CanceledContext(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.HandleZip(t, "/repo.zip", []byte("zip"))

	c := newClient(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, ts.URL+"/repo.zip")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Get_Cache(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.HandleZip(t, "/repo.zip", []byte("zip-bytes"))
	ts.HandleHTML(t, "/page", "<html></html>")
	ts.Handle404(t, "/missing.zip")

	store := testutil.NewBadgerCache(t)
	c := newClient(t, func(o *fetcher.ClientOptions) {
		o.EnableCache = true
		o.Cache = store
		o.CacheTTL = time.Hour
	})
	ctx := context.Background()

	first, err := c.Get(ctx, ts.URL+"/repo.zip")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := c.Get(ctx, ts.URL+"/repo.zip")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, []byte("zip-bytes"), second.Body)
	assert.Equal(t, int64(1), ts.Requests())

	_, err = c.Get(ctx, ts.URL+"/page")
	require.NoError(t, err)
	assert.False(t, store.Has(ctx, cache.ArchiveKey(ts.URL+"/page")))

	_, err = c.Get(ctx, ts.URL+"/missing.zip")
	require.NoError(t, err)
	assert.False(t, store.Has(ctx, cache.ArchiveKey(ts.URL+"/missing.zip")))
}

func TestClient_SetCacheEnabled(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.HandleZip(t, "/repo.zip", []byte("zip"))

	store := testutil.NewBadgerCache(t)
	c := newClient(t, func(o *fetcher.ClientOptions) { o.Cache = store })
	c.SetCacheEnabled(false)

	ctx := context.Background()
	_, err := c.Get(ctx, ts.URL+"/repo.zip")
	require.NoError(t, err)
	_, err = c.Get(ctx, ts.URL+"/repo.zip")
	require.NoError(t, err)
	assert.Equal(t, int64(2), ts.Requests())
}
