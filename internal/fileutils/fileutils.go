// Package fileutils provides the small file helpers used by the file-backed stores and exports.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// Permissions used for planner data.
const (
	PermissionDirectory = 0750
	PermissionDataFile  = 0600
)

// FileExists checks if a regular file exists at the given path.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDirectoryExists creates the directory and its parents if needed.
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dirPath, err)
	}
	return nil
}

// WriteFileAtomic writes data to a temporary file next to filePath and renames
// it into place, so readers never observe a partial file.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing %s: %w", filePath, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error setting permissions on %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", filePath, err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("error replacing %s: %w", filePath, err)
	}
	return nil
}
