package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/codecollector/internal/domain"
	"github.com/quantmind-br/codecollector/internal/utils"
)

// Writer persists the combined document into the output directory
type Writer struct {
	baseDir      string
	jsonMetadata bool
	force        bool
	dryRun       bool
	logger       *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir      string
	JSONMetadata bool
	Force        bool
	DryRun       bool
	Logger       *utils.Logger
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Writer{
		baseDir:      utils.ExpandPath(opts.BaseDir),
		jsonMetadata: opts.JSONMetadata,
		force:        opts.Force,
		dryRun:       opts.DryRun,
		logger:       opts.Logger.WithComponent("writer"),
	}
}

// Path returns where filename would be written
func (w *Writer) Path(filename string) string {
	return filepath.Join(w.baseDir, filepath.Base(filename))
}

// DryRun reports whether writes are skipped
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Write saves text as filename and returns the resulting path.
// An existing file is an error unless the writer was created with Force.
// meta may be nil; it is only written when JSON metadata is enabled.
func (w *Writer) Write(ctx context.Context, filename, text string, meta *Metadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := w.Path(filename)

	if !w.force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s: %w", path, domain.ErrFileExists)
		}
	}

	if w.dryRun {
		w.logger.Info().Str("path", path).Int("bytes", len(text)).Msg("Dry run, skipping write")
		return path, nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", err
	}

	if w.jsonMetadata && meta != nil {
		if err := w.writeJSON(utils.JSONPath(path), meta); err != nil {
			return path, err
		}
	}

	w.logger.Debug().Str("path", path).Int("bytes", len(text)).Msg("Wrote combined document")
	return path, nil
}

func (w *Writer) writeJSON(path string, meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
