package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrInvalidURL indicates the repository URL could not be parsed
	ErrInvalidURL = errors.New("invalid repository URL")

	// ErrFetchFailed indicates no archive could be retrieved from the remote host
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDecode indicates the archive container or one of its members could not be decoded
	ErrDecode = errors.New("decode failed")

	// ErrNoMatch indicates the filter selected zero archive entries
	ErrNoMatch = errors.New("no matching entries")

	// ErrInvalidTransition indicates a pipeline event that is not allowed in the current phase
	ErrInvalidTransition = errors.New("invalid pipeline transition")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited indicates rate limiting was encountered
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("timeout")

	// ErrTooLarge indicates a payload exceeded the configured size limit
	ErrTooLarge = errors.New("payload too large")

	// ErrFileExists indicates the output file exists and overwrite is disabled
	ErrFileExists = errors.New("output file already exists")
)

// InvalidInputError is returned when user input is rejected before any I/O
type InvalidInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates a new InvalidInputError
func NewInvalidInputError(field, value string, err error) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Err: err}
}

// FetchError represents an error during fetching.
// Attempts holds the per-candidate failures when several locations were probed.
type FetchError struct {
	URL        string
	StatusCode int
	Attempts   []error
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, "fetch error for %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	} else {
		fmt.Fprintf(&b, "fetch error for %s: %v", e.URL, e.Err)
	}
	for _, a := range e.Attempts {
		b.WriteString("; ")
		b.WriteString(a.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports every FetchError as an ErrFetchFailed
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// DecodeError is returned when the container or a member cannot be read
type DecodeError struct {
	Entry string // empty when the container itself failed to open
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("open archive: %v", e.Err)
	}
	return fmt.Sprintf("decode entry %s: %v", e.Entry, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(entry string, err error) *DecodeError {
	return &DecodeError{Entry: entry, Err: err}
}

// NoMatchError is returned when the filter selected nothing
type NoMatchError struct {
	Suffixes []string
}

func (e *NoMatchError) Error() string {
	if len(e.Suffixes) == 0 {
		return "no files found in archive (no extension filter was given)"
	}
	return fmt.Sprintf("no files matching the extensions (%s) were found in the archive",
		strings.Join(e.Suffixes, ", "))
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// TransitionError reports a pipeline event that is not valid for the current phase
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid pipeline transition: %s on %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err        error
	RetryAfter int // Seconds to wait before retry, 0 if unknown
}

func (e *RetryableError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("retryable error (retry after %ds): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 429, 503, 502, 504:
			return true
		}
		if fetchErr.StatusCode >= 520 && fetchErr.StatusCode <= 530 {
			return true
		}
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
