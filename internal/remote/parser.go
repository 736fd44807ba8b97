package remote

import (
	"regexp"
	"strings"

	"github.com/quantmind-br/codecollector/internal/domain"
)

var repoPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s?#]+)/([^/\s?#]+)`)

// ParseRepoURL extracts owner and repository from a GitHub URL.
// Scheme and "www." are optional; trailing paths and a ".git" suffix are ignored.
func ParseRepoURL(rawURL string) (RepoRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	matches := repoPattern.FindStringSubmatch(trimmed)
	if len(matches) != 3 {
		return RepoRef{}, domain.NewInvalidInputError("repository URL", rawURL, domain.ErrInvalidURL)
	}

	owner := matches[1]
	repo := strings.TrimSuffix(matches[2], ".git")
	if owner == "" || repo == "" {
		return RepoRef{}, domain.NewInvalidInputError("repository URL", rawURL, domain.ErrInvalidURL)
	}

	return RepoRef{Owner: owner, Repo: repo}, nil
}
