package testutil

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipFile describes one member of a test archive. Names ending in "/" are
// written as directory records.
type ZipFile struct {
	Name    string
	Content string
}

// BuildZip creates an in-memory zip archive with the given members in order
func BuildZip(t *testing.T, files ...ZipFile) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		require.NoError(t, err)
		if f.Content != "" {
			_, err = w.Write([]byte(f.Content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// SampleRepoZip returns an archive shaped like a GitHub branch snapshot
func SampleRepoZip(t *testing.T) []byte {
	t.Helper()

	return BuildZip(t,
		ZipFile{Name: "repo-main/"},
		ZipFile{Name: "repo-main/README.md", Content: "# Repo\n"},
		ZipFile{Name: "repo-main/src/"},
		ZipFile{Name: "repo-main/src/main.go", Content: "package main\n"},
		ZipFile{Name: "repo-main/src/util.go", Content: "package main\n\nfunc util() {}\n"},
		ZipFile{Name: "repo-main/logo.png", Content: "\x89PNG"},
	)
}
