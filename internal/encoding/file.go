package encoding

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
// Uses 0700 permissions since the application directory holds patient data.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// EnsureParentDir ensures the parent directory of a file path exists.
func EnsureParentDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// ReadFile reads the entire contents of a file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return data, nil
}

// WriteFileAtomic replaces path with data so readers never see a partial
// file. The file is created with 0600 permissions and parent directories are
// created when missing.
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	w, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer w.RemoveIfNotClosed()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
