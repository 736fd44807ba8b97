// Package archive opens zip containers and decodes their members to text.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/quantmind-br/codecollector/internal/domain"
)

// Entry is one member of an opened archive
type Entry interface {
	Name() string
	IsDir() bool
	Text(ctx context.Context) (string, error)
}

// Options controls how members are decoded
type Options struct {
	// MaxEntrySize rejects members whose uncompressed size is larger (0 = unlimited)
	MaxEntrySize int64
}

// Open parses data as a zip container and returns its entries in
// enumeration order.
func Open(data []byte, opts Options) ([]Entry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewDecodeError("", err)
	}

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, &zipEntry{file: f, maxSize: opts.MaxEntrySize})
	}
	return entries, nil
}

type zipEntry struct {
	file    *zip.File
	maxSize int64
}

func (e *zipEntry) Name() string {
	return e.file.Name
}

func (e *zipEntry) IsDir() bool {
	return e.file.FileInfo().IsDir() || strings.HasSuffix(e.file.Name, "/")
}

func (e *zipEntry) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.maxSize > 0 && e.file.UncompressedSize64 > uint64(e.maxSize) {
		return "", domain.NewDecodeError(e.file.Name,
			fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrTooLarge, e.file.UncompressedSize64, e.maxSize))
	}

	rc, err := e.file.Open()
	if err != nil {
		return "", domain.NewDecodeError(e.file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", domain.NewDecodeError(e.file.Name, err)
	}

	return DecodeText(content), nil
}
