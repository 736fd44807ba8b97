package testutil

import (
	"io"
	"testing"

	"github.com/quantmind-br/codecollector/internal/utils"
	"github.com/rs/zerolog"
)

// NewTestLogger creates a logger that discards output but tags the test name
func NewTestLogger(t *testing.T) *utils.Logger {
	t.Helper()

	zlogger := zerolog.New(io.Discard).With().
		Timestamp().
		Str("test", t.Name()).
		Logger()

	return &utils.Logger{Logger: zlogger}
}
