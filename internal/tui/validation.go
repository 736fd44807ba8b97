package tui

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/codecollector/internal/config"
	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/remote"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrPositiveInt   = errors.New("must be a positive integer")
	ErrInvalidRange  = errors.New("value out of valid range")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	_, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 30s, 5m, 1h): %w", err)
	}
	return nil
}

// ValidatePositiveInt validates that a string represents a positive integer
func ValidatePositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // Empty is valid (will use default)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ErrInvalidNumber
	}
	if n < 1 {
		return ErrPositiveInt
	}
	return nil
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateSize validates sizes such as "10MB" or "0"
func ValidateSize(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := config.ParseSize(s); err != nil {
		return fmt.Errorf("invalid size (use: 512KB, 10MB, 1GB): %w", err)
	}
	return nil
}

// ValidateProxyURL accepts an empty value (direct download) or an http(s) URL prefix
func ValidateProxyURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL, e.g. https://corsproxy.io/?url=")
	}
	return nil
}

// ValidateExtensions requires at least one usable extension unless processAll is set
func ValidateExtensions(processAll *bool) func(string) error {
	return func(s string) error {
		if processAll != nil && *processAll {
			return nil
		}
		if filter.Parse(s, false).IsMatchAll() {
			return errors.New("enter at least one extension, or enable process all")
		}
		return nil
	}
}

// ValidateRepoURL checks that s names a GitHub repository
func ValidateRepoURL(s string) error {
	if err := ValidateRequired(s); err != nil {
		return err
	}
	if _, err := remote.ParseRepoURL(s); err != nil {
		return errors.New("expected https://github.com/<owner>/<repo>")
	}
	return nil
}

// ValidateZipPath checks that s is an existing regular file
func ValidateZipPath(s string) error {
	if err := ValidateRequired(s); err != nil {
		return err
	}
	info, err := os.Stat(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	if info.IsDir() {
		return errors.New("path is a directory, expected a .zip file")
	}
	return nil
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	validLevels := map[string]bool{
		"trace":    true,
		"debug":    true,
		"info":     true,
		"warn":     true,
		"error":    true,
		"fatal":    true,
		"panic":    true,
		"disabled": true,
	}
	if !validLevels[strings.ToLower(s)] {
		return fmt.Errorf("invalid log level: must be one of trace, debug, info, warn, error, fatal, panic, disabled")
	}
	return nil
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	validFormats := map[string]bool{
		"json":   true,
		"pretty": true,
	}
	if !validFormats[strings.ToLower(s)] {
		return fmt.Errorf("invalid log format: must be json or pretty")
	}
	return nil
}
