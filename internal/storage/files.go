package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AD7six/spfile/internal/logging"
)

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SaveStream writes r to path without any text decoding, so binary payloads
// survive byte for byte. The parent directory must already exist. On failure
// the partially written file is removed.
func SaveStream(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if !DirExists(dir) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			logging.Logger.Warn("failed to remove partial file", "path", path, "error", rmErr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}
