package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// TestServer is a wrapper around httptest.Server for testing
type TestServer struct {
	*httptest.Server
	mux      *http.ServeMux
	requests atomic.Int64
}

// NewTestServer creates a new test HTTP server
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	ts := &TestServer{mux: http.NewServeMux()}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.requests.Add(1)
		ts.mux.ServeHTTP(w, r)
	}))

	t.Cleanup(func() {
		ts.Server.Close()
	})

	return ts
}

// Requests returns how many requests the server has received
func (ts *TestServer) Requests() int64 {
	return ts.requests.Load()
}

// Handle registers a handler for a specific path
func (ts *TestServer) Handle(t *testing.T, path string, handler http.HandlerFunc) {
	t.Helper()
	ts.mux.HandleFunc(path, handler)
}

// HandleBytes registers a handler that returns body with the given content type
func (ts *TestServer) HandleBytes(t *testing.T, path, contentType string, body []byte) {
	t.Helper()
	ts.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

// HandleZip registers a handler that serves a zip payload
func (ts *TestServer) HandleZip(t *testing.T, path string, body []byte) {
	t.Helper()
	ts.HandleBytes(t, path, "application/zip", body)
}

// HandleHTML registers a handler that returns HTML content
func (ts *TestServer) HandleHTML(t *testing.T, path, htmlBody string) {
	t.Helper()
	ts.HandleBytes(t, path, "text/html; charset=utf-8", []byte(htmlBody))
}

// Handle404 registers a handler that returns 404 Not Found
func (ts *TestServer) Handle404(t *testing.T, path string) {
	t.Helper()
	ts.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	})
}
