package app

import (
	"strings"

	"github.com/quantmind-br/codecollector/internal/domain"
)

// DetectSource decides whether a CLI argument names a remote repository or a
// local zip file. Anything mentioning github.com, with or without a scheme,
// goes to the resolver so that malformed repository URLs are reported as such.
func DetectSource(input string) domain.SourceKind {
	lower := strings.ToLower(strings.TrimSpace(input))

	if strings.HasPrefix(lower, "github.com/") ||
		strings.HasPrefix(lower, "www.github.com/") ||
		(isHTTP(lower) && strings.Contains(lower, "github.com")) {
		return domain.SourceRemote
	}

	return domain.SourceUpload
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
