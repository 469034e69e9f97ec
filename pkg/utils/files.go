// Package utils holds small host side helpers: ROM file
// loading with transparent decompression, and file dialogs.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// LoadFile reads the given file, transparently unwrapping gzip,
// zip and 7z archives. For archives the first file inside is
// returned.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.Reader
	switch filepath.Ext(filename) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip %s: %w", filename, err)
		}
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening zip %s: %w", filename, err)
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("zip %s is empty", filename)
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry: %w", err)
		}
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening 7z %s: %w", filename, err)
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("7z %s is empty", filename)
		}
		decoder, err = r.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("opening 7z entry: %w", err)
		}
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}
