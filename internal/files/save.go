package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveFile writes data to filePath, creating missing parent directories.
func SaveFile(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("creating directories for %s: %w", filePath, err)
	}

	dest, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filePath, err)
	}
	defer dest.Close()

	_, err = dest.Write(data)
	return err
}

// IsEmptyDir checks if a directory is empty.
func IsEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) == 0
}
