package remote

import "fmt"

// DefaultBranches are probed in order when resolving a repository
var DefaultBranches = []string{"main", "master"}

// DefaultProxyURL is prepended to the query-escaped archive URL
const DefaultProxyURL = "https://corsproxy.io/?url="

// RepoRef identifies a GitHub repository and, once resolved, its branch
type RepoRef struct {
	Owner  string
	Repo   string
	Branch string
}

// Name returns "owner/repo"
func (r RepoRef) Name() string {
	return r.Owner + "/" + r.Repo
}

// ArchiveURL returns the codeload-style zip URL for a branch
func (r RepoRef) ArchiveURL(branch string) string {
	return fmt.Sprintf("https://github.com/%s/%s/archive/refs/heads/%s.zip", r.Owner, r.Repo, branch)
}

// Archive is a downloaded repository snapshot
type Archive struct {
	Ref  RepoRef
	Data []byte
	URL  string // the location that served Data
}
