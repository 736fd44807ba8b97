// Package manifest loads batch job files. A manifest lists several archives
// or repositories, each collected into its own document in one run.
//
// # Manifest Format
//
// Manifests can be written in YAML or JSON format:
//
//	sources:
//	  - source: ./backend.zip
//	    extensions: ".go, .sql"
//	  - source: https://github.com/org/frontend
//	    name: frontend-snapshot
//	    all: true
//	options:
//	  continue_on_error: true
//	  output: ./collected
//	  extensions: ".md"
//
// A source without extensions uses options.extensions, and when that is empty
// too, the configured default list. A source without a name is named after
// the repository or the archive file.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	cfg, err := loader.Load("jobs.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, src := range cfg.Sources {
//	    spec := src.Spec(cfg.Options, defaultExtensions)
//	    name := src.OutputName()
//	    // Process each source
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrNoSources: manifest has no sources defined
//   - ErrEmptySource: a source is missing its zip path or URL
//   - ErrDuplicateName: two sources would write the same output file
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: manifest file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package manifest
