package app

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quantmind-br/codecollector/internal/domain"
)

// User-facing messages. Causes are logged, never shown verbatim.
const (
	MsgInvalidURL   = "Invalid GitHub repository URL."
	MsgEmptyArchive = "Please provide a zip file to process."
	MsgFetchFailed  = "Could not fetch the repository. Make sure it is public and has a 'main' or 'master' branch."
	MsgDecodeFailed = "Could not process the file. Make sure it is a valid, uncorrupted zip archive."
	MsgTooLarge     = "The archive exceeds the configured size limit."
	MsgCanceled     = "Processing was canceled."
	MsgUnexpected   = "An unexpected error occurred."
)

// UserMessage maps an error from the pipeline to readable text
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var inputErr *domain.InvalidInputError
	var noMatch *domain.NoMatchError

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MsgCanceled
	case errors.As(err, &inputErr):
		if errors.Is(err, domain.ErrInvalidURL) {
			return MsgInvalidURL
		}
		return MsgEmptyArchive
	case errors.As(err, &noMatch):
		return capitalize(noMatch.Error()) + "."
	case errors.Is(err, domain.ErrDecode):
		// an oversized entry is still a failed decode
		return MsgDecodeFailed
	case errors.Is(err, domain.ErrTooLarge):
		return MsgTooLarge
	case errors.Is(err, domain.ErrFetchFailed):
		return MsgFetchFailed
	default:
		return MsgUnexpected
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.TrimPrefix(s, s[:size])
}
