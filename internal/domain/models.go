package domain

import "net/http"

// SourceKind distinguishes how an archive reached the pipeline
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceRemote SourceKind = "remote"
)

// Source is the archive payload handed to the flattener.
// Branch and RepoURL are only set for SourceRemote.
type Source struct {
	Kind    SourceKind `json:"kind"`
	Name    string     `json:"name"`
	Data    []byte     `json:"-"`
	RepoURL string     `json:"repo_url,omitempty"`
	Branch  string     `json:"branch,omitempty"`
}

// NewUploadSource wraps archive bytes supplied directly by the user
func NewUploadSource(data []byte, name string) Source {
	return Source{Kind: SourceUpload, Name: name, Data: data}
}

// NewRemoteSource wraps archive bytes retrieved from a repository host
func NewRemoteSource(data []byte, name, repoURL, branch string) Source {
	return Source{
		Kind:    SourceRemote,
		Name:    name,
		Data:    data,
		RepoURL: repoURL,
		Branch:  branch,
	}
}

// Label returns the human-readable name used in the combined document header
func (s Source) Label() string {
	if s.Kind == SourceRemote && s.Branch != "" {
		return s.Name + " (branch: " + s.Branch + ")"
	}
	return s.Name
}

// Result is the success payload of one pipeline run
type Result struct {
	Members []string `json:"members"` // sorted lexicographically
	Text    string   `json:"-"`
	Stats   Stats    `json:"stats"`
}

// Stats summarizes what the flattener saw
type Stats struct {
	Entries     int `json:"entries"`
	Directories int `json:"directories"`
	Matched     int `json:"matched"`
	Bytes       int `json:"bytes"`
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	URL         string
	FromCache   bool
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
