package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/codecollector/internal/filter"
	"github.com/quantmind-br/codecollector/internal/output"
	"github.com/quantmind-br/codecollector/internal/remote"
)

// Config represents the complete manifest configuration
type Config struct {
	Sources []Source `yaml:"sources" json:"sources"`
	Options Options  `yaml:"options" json:"options"`
}

// Source is one archive or repository to collect
type Source struct {
	Source     string `yaml:"source" json:"source"` // zip path or GitHub URL
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Extensions string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	All        bool   `yaml:"all,omitempty" json:"all,omitempty"`
}

// Options represents global manifest options
type Options struct {
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error"`
	Output          string `yaml:"output,omitempty" json:"output,omitempty"`
	Extensions      string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	ProcessAll      bool   `yaml:"process_all,omitempty" json:"process_all,omitempty"`
}

// Validate validates the manifest configuration
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]int, len(c.Sources))
	for i, src := range c.Sources {
		if strings.TrimSpace(src.Source) == "" {
			return fmt.Errorf("source %d: %w", i, ErrEmptySource)
		}
		name := src.OutputName()
		if j, ok := seen[name]; ok {
			return fmt.Errorf("sources %d and %d: %w %q", j, i, ErrDuplicateName, name)
		}
		seen[name] = i
	}
	return nil
}

// Spec returns the extension filter for the source. The source's own list
// wins over the manifest-wide one, which wins over fallback.
func (s Source) Spec(opts Options, fallback string) filter.Spec {
	if s.All || opts.ProcessAll {
		return filter.MatchAll()
	}
	switch {
	case strings.TrimSpace(s.Extensions) != "":
		return filter.Parse(s.Extensions, false)
	case strings.TrimSpace(opts.Extensions) != "":
		return filter.Parse(opts.Extensions, false)
	default:
		return filter.Parse(fallback, false)
	}
}

// OutputName returns the document filename for the source
func (s Source) OutputName() string {
	if strings.TrimSpace(s.Name) != "" {
		return output.NameFor(s.Name)
	}
	if ref, err := remote.ParseRepoURL(s.Source); err == nil {
		return output.NameFor(ref.Repo)
	}
	base := filepath.Base(strings.TrimSpace(s.Source))
	return output.NameFor(strings.TrimSuffix(base, filepath.Ext(base)))
}

// DefaultOptions returns options with sensible defaults. An empty Output
// keeps the configured output directory.
func DefaultOptions() Options {
	return Options{
		ContinueOnError: false,
	}
}
