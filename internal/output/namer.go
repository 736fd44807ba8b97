package output

import (
	"regexp"
	"strings"
)

const (
	// DefaultFilename is used when no project name was given
	DefaultFilename = "collected_code.txt"
	// DefaultStem replaces a project name that sanitizes to nothing
	DefaultStem = "project"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9\-._]`)
)

// NameFor derives the output filename from an optional project name
func NameFor(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return DefaultFilename
	}

	stem := whitespaceRun.ReplaceAllString(trimmed, "-")
	stem = unsafeChars.ReplaceAllString(stem, "")
	if stem == "" {
		stem = DefaultStem
	}
	return stem + ".txt"
}
