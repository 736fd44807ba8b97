package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/codecollector/internal/app"
	"github.com/quantmind-br/codecollector/pkg/version"
	"github.com/quantmind-br/codecollector/tests/testutil"
)

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "zip-file | github-url")
	assert.Contains(t, out, "--extensions")
	assert.Contains(t, out, "--proxy")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codecollector")
	assert.Contains(t, out, version.Tagline)
}

func TestRun_ZipFile(t *testing.T) {
	home := isolateHome(t)
	outDir := t.TempDir()

	zipPath := filepath.Join(home, "sample.zip")
	require.NoError(t, os.WriteFile(zipPath, testutil.SampleRepoZip(t), 0644))

	out, err := execute(t, zipPath, "-o", outDir, "-e", ".go", "-n", "demo", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "Collected 2 files")

	data, err := os.ReadFile(filepath.Join(outDir, "demo.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "Content collected from: sample.zip\n"))
	assert.Contains(t, text, "File: repo-main/src/main.go")
	assert.Contains(t, text, "File: repo-main/src/util.go")
	assert.NotContains(t, text, "README.md")

	// A second run must not clobber the first document
	_, err = execute(t, zipPath, "-o", outDir, "-e", ".go", "-n", "demo", "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFile(t *testing.T) {
	home := isolateHome(t)

	_, err := execute(t, filepath.Join(home, "missing.zip"), "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestRun_NotAnArchive(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a zip"), 0644))

	_, err := execute(t, path, "-o", t.TempDir(), "--no-cache")
	require.Error(t, err)
	assert.Equal(t, app.MsgDecodeFailed, err.Error())
}

func TestRun_Repository(t *testing.T) {
	isolateHome(t)
	outDir := t.TempDir()

	server := testutil.NewTestServer(t)
	server.Handle(t, "/fetch", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Query().Get("url"), "/main.zip") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(testutil.SampleRepoZip(t))
	})

	out, err := execute(t, "https://github.com/owner/repo",
		"-o", outDir, "-e", ".md", "-n", "repo", "--no-cache",
		"--proxy", server.URL+"/fetch?url=")
	require.NoError(t, err)
	assert.Contains(t, out, "Collected 1 file")

	data, err := os.ReadFile(filepath.Join(outDir, "repo.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Content collected from: owner/repo (branch: main)")
	assert.Contains(t, string(data), "# Repo")
}

func TestCheckProxy(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	assert.True(t, checkProxy(t.Context(), http.DefaultClient, ok.URL+"/?url="))
	assert.False(t, checkProxy(t.Context(), http.DefaultClient, broken.URL+"/?url="))
	assert.False(t, checkProxy(t.Context(), http.DefaultClient, closedURL+"/?url="))
	assert.False(t, checkProxy(t.Context(), http.DefaultClient, "not a url"))
}

func TestCheckWritePermissions(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, checkWritePermissions(dir))
	assert.False(t, checkWritePermissions(filepath.Join(dir, "missing")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file must be removed")
}

func TestCheckCacheDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.True(t, checkCacheDir(dir))
	assert.False(t, checkCacheDir(file))
	assert.False(t, checkCacheDir(filepath.Join(dir, "missing")))
}

func TestDoctorCmd(t *testing.T) {
	isolateHome(t)

	out, err := execute(t, "doctor", "--proxy", "", "-o", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Checking environment")
	assert.Contains(t, out, "Config file: OK")
	assert.Contains(t, out, "Proxy: DISABLED")
	assert.Contains(t, out, "Write permissions: OK")
	assert.Contains(t, out, "WARN (will be created on first use)")
}

func TestConfigInit(t *testing.T) {
	home := isolateHome(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".codecollector", "config.yaml")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "proxy_url")

	_, err = execute(t, "config", "init")
	assert.Error(t, err)
}

func TestBatchCmd(t *testing.T) {
	home := isolateHome(t)
	outDir := filepath.Join(home, "collected")

	zipPath := filepath.Join(home, "sample.zip")
	require.NoError(t, os.WriteFile(zipPath, testutil.SampleRepoZip(t), 0644))

	manifestPath := filepath.Join(home, "jobs.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
sources:
  - source: `+zipPath+`
    extensions: ".go"
  - source: `+filepath.Join(home, "missing.zip")+`
  - source: `+zipPath+`
    name: docs
    extensions: ".md"
options:
  continue_on_error: true
  output: `+outDir+`
`), 0644))

	out, err := execute(t, "batch", manifestPath, "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 sources failed")
	assert.Contains(t, out, "[1/3]")
	assert.Contains(t, out, "[3/3]")

	code, err := os.ReadFile(filepath.Join(outDir, "sample.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "File: repo-main/src/main.go")

	docs, err := os.ReadFile(filepath.Join(outDir, "docs.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(docs), "File: repo-main/README.md")
	assert.NotContains(t, string(docs), "main.go")
}
