package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors verifies sentinel errors are defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check string
	}{
		{"ErrInvalidURL", ErrInvalidURL, "invalid repository URL"},
		{"ErrFetchFailed", ErrFetchFailed, "fetch failed"},
		{"ErrDecode", ErrDecode, "decode failed"},
		{"ErrNoMatch", ErrNoMatch, "no matching entries"},
		{"ErrInvalidTransition", ErrInvalidTransition, "invalid pipeline transition"},
		{"ErrCacheMiss", ErrCacheMiss, "cache miss"},
		{"ErrTooLarge", ErrTooLarge, "too large"},
		{"ErrFileExists", ErrFileExists, "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.check)
		})
	}
}

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("repository URL", "not-a-url", ErrInvalidURL)

	assert.Contains(t, err.Error(), `"not-a-url"`)
	assert.ErrorIs(t, err, ErrInvalidURL)

	wrapped := fmt.Errorf("resolve: %w", err)
	var target *InvalidInputError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "repository URL", target.Field)
}

func TestFetchError(t *testing.T) {
	t.Run("with status", func(t *testing.T) {
		err := NewFetchError("https://example.com/a.zip", 404, errors.New("HTTP 404"))
		assert.Equal(t, "fetch error for https://example.com/a.zip: status 404: HTTP 404", err.Error())
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("transport failure", func(t *testing.T) {
		err := NewFetchError("https://example.com/a.zip", 0, errors.New("connection refused"))
		assert.Equal(t, "fetch error for https://example.com/a.zip: connection refused", err.Error())
	})

	t.Run("aggregated attempts", func(t *testing.T) {
		err := &FetchError{
			URL: "https://github.com/o/r",
			Err: ErrFetchFailed,
			Attempts: []error{
				errors.New("main: status 404"),
				errors.New("master: text/html response"),
			},
		}
		msg := err.Error()
		assert.Contains(t, msg, "main: status 404")
		assert.Contains(t, msg, "master: text/html response")
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")

	open := NewDecodeError("", cause)
	assert.Equal(t, "open archive: zip: not a valid zip file", open.Error())
	assert.ErrorIs(t, open, ErrDecode)
	assert.ErrorIs(t, open, cause)

	entry := NewDecodeError("src/a.go", cause)
	assert.Contains(t, entry.Error(), "src/a.go")
}

func TestNoMatchError(t *testing.T) {
	withSuffixes := &NoMatchError{Suffixes: []string{".md", ".go"}}
	assert.Contains(t, withSuffixes.Error(), "(.md, .go)")
	assert.ErrorIs(t, withSuffixes, ErrNoMatch)

	none := &NoMatchError{}
	assert.NotEmpty(t, none.Error())
	assert.Contains(t, none.Error(), "no extension filter")
}

func TestTransitionError(t *testing.T) {
	err := &TransitionError{From: "idle", Event: "succeeded"}
	assert.Equal(t, "invalid pipeline transition: succeeded on idle", err.Error())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"retryable wrapper", &RetryableError{Err: errors.New("x")}, true},
		{"429", NewFetchError("u", 429, errors.New("x")), true},
		{"502", NewFetchError("u", 502, errors.New("x")), true},
		{"cloudflare 522", NewFetchError("u", 522, errors.New("x")), true},
		{"404", NewFetchError("u", 404, errors.New("x")), false},
		{"rate limited", fmt.Errorf("wrap: %w", ErrRateLimited), true},
		{"timeout", ErrTimeout, true},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestRetryableError_Message(t *testing.T) {
	err := &RetryableError{Err: errors.New("HTTP 503"), RetryAfter: 5}
	assert.Equal(t, "retryable error (retry after 5s): HTTP 503", err.Error())

	err = &RetryableError{Err: errors.New("HTTP 503")}
	assert.Equal(t, "retryable error: HTTP 503", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("workers", "must be positive")
	assert.Equal(t, "validation error for workers: must be positive", err.Error())
}
