// filepath: internal/storage/file.go
// Package storage provides functionality for storing and managing uploaded files.
package storage

import (
	"fmt"
	"io"
	"os"
)

// SaveFile saves file data from a reader to a specified path.
// It streams the file to avoid loading it entirely into memory. A partially
// written file is removed again when the copy fails.
func SaveFile(fileData io.Reader, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}

	fileSize, err := io.Copy(f, fileData)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("could not write file: %w", err)
	}

	return fileSize, nil
}

// RemoveFile deletes path. A file that is already gone is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}
