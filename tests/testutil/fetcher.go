package testutil

import (
	"context"
	"net/http"

	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a testify mock of domain.Fetcher
type MockFetcher struct {
	mock.Mock
}

// Get returns the response registered with On("Get", ...)
func (m *MockFetcher) Get(ctx context.Context, url string) (*domain.Response, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

// Close is a no-op
func (m *MockFetcher) Close() error {
	return nil
}

// ArchiveResponse builds a successful zip response
func ArchiveResponse(url string, body []byte) *domain.Response {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/zip")
	return &domain.Response{
		StatusCode:  http.StatusOK,
		Body:        body,
		Headers:     headers,
		ContentType: "application/zip",
		URL:         url,
	}
}

// StatusResponse builds a response with the given status and content type
func StatusResponse(url string, status int, contentType string) *domain.Response {
	headers := make(http.Header)
	headers.Set("Content-Type", contentType)
	return &domain.Response{
		StatusCode:  status,
		Body:        []byte(http.StatusText(status)),
		Headers:     headers,
		ContentType: contentType,
		URL:         url,
	}
}
