package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.Load("/nonexistent/path/manifest.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	path := writeManifest(t, "jobs.yaml", `
sources:
  - source: ./backend.zip
    extensions: ".go, .sql"
  - source: https://github.com/org/frontend
    name: frontend-snapshot
    all: true
options:
  output: ./collected
  continue_on_error: true
  extensions: ".md"
`)

	cfg, err := NewLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "./backend.zip", cfg.Sources[0].Source)
	assert.Equal(t, ".go, .sql", cfg.Sources[0].Extensions)
	assert.Equal(t, "https://github.com/org/frontend", cfg.Sources[1].Source)
	assert.Equal(t, "frontend-snapshot", cfg.Sources[1].Name)
	assert.True(t, cfg.Sources[1].All)
	assert.True(t, cfg.Options.ContinueOnError)
	assert.Equal(t, "./collected", cfg.Options.Output)
	assert.Equal(t, ".md", cfg.Options.Extensions)
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	path := writeManifest(t, "jobs.json", `{
		"sources": [
			{"source": "a.zip"},
			{"source": "github.com/org/repo", "extensions": "go"}
		],
		"options": {"output": "./out"}
	}`)

	cfg, err := NewLoader().Load(path)

	require.NoError(t, err)
	assert.Len(t, cfg.Sources, 2)
	assert.Equal(t, "go", cfg.Sources[1].Extensions)
	assert.Equal(t, "./out", cfg.Options.Output)
	assert.False(t, cfg.Options.ContinueOnError)
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeManifest(t, "bad.yaml", "sources: [\n  - source: a.zip\n")

	cfg, err := NewLoader().Load(path)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_InvalidJSON(t *testing.T) {
	path := writeManifest(t, "bad.json", `{"sources": [`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_Load_UnsupportedExtension(t *testing.T) {
	path := writeManifest(t, "jobs.toml", `sources = []`)

	_, err := NewLoader().Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestLoader_Load_YMLExtension(t *testing.T) {
	path := writeManifest(t, "jobs.yml", "sources:\n  - source: a.zip\n")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Sources, 1)
}

func TestLoadFromBytes_CaseInsensitiveExt(t *testing.T) {
	cfg, err := NewLoader().LoadFromBytes([]byte("sources:\n  - source: a.zip\n"), ".YAML")
	require.NoError(t, err)
	assert.Len(t, cfg.Sources, 1)
}

func TestLoadFromBytes_NoSources(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("sources: []\n"), ".yaml")
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestLoadFromBytes_BlankSource(t *testing.T) {
	_, err := NewLoader().LoadFromBytes([]byte("sources:\n  - source: \"   \"\n"), ".yaml")
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoader_applyDefaults_TrimsSources(t *testing.T) {
	cfg, err := NewLoader().LoadFromBytes([]byte(`{"sources": [{"source": "  a.zip  "}], "options": {"output": " ./out "}}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "a.zip", cfg.Sources[0].Source)
	assert.Equal(t, "./out", cfg.Options.Output)
}
