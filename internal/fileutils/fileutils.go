// Package fileutils writes command results to files.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// OutputFile stages writes in a temporary file next to its destination.
// The destination only changes on Commit, so a failed render never leaves
// a truncated report behind.
type OutputFile struct {
	tmp  *os.File
	path string
	done bool
}

// CreateOutput prepares an OutputFile for path, creating parent directories
// as needed.
func CreateOutput(path string) (*OutputFile, error) {
	if path == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	if DirectoryExists(path) {
		return nil, fmt.Errorf("output path %s is a directory", path)
	}

	dir := filepath.Dir(path)
	if err := EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &OutputFile{tmp: tmp, path: path}, nil
}

// Write implements io.Writer.
func (o *OutputFile) Write(p []byte) (int, error) {
	return o.tmp.Write(p)
}

// Path returns the destination path.
func (o *OutputFile) Path() string {
	return o.path
}

// Commit moves the staged content to the destination.
func (o *OutputFile) Commit() error {
	if o.done {
		return nil
	}
	o.done = true
	if err := o.tmp.Close(); err != nil {
		_ = os.Remove(o.tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(o.tmp.Name(), 0644); err != nil {
		_ = os.Remove(o.tmp.Name())
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(o.tmp.Name(), o.path); err != nil {
		_ = os.Remove(o.tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Discard drops the staged content. It is a no-op after Commit.
func (o *OutputFile) Discard() error {
	if o.done {
		return nil
	}
	o.done = true
	_ = o.tmp.Close()
	if err := os.Remove(o.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary file: %w", err)
	}
	return nil
}
