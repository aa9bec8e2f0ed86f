package platform

import (
	"errors"
	"fmt"
	"os"
)

const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

var (
	// ErrDirectoryCreateFailed marks a directory that could not be created.
	ErrDirectoryCreateFailed = errors.New("directory create failed")

	// ErrWriteFailed marks a file that could not be opened, written or closed.
	ErrWriteFailed = errors.New("write failed")
)

// MkdirAll creates dir and any missing parents. An existing directory is not
// an error.
func MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryCreateFailed, dir, err)
	}
	return nil
}

// Touch creates path as an empty file, truncating it if it already exists.
// The parent directory must exist.
func Touch(path string) error {
	return WriteFile(path, nil)
}

// WriteFile replaces the contents of path with data. The file is truncated
// before writing and closed on every return path.
func WriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrWriteFailed, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing %s: %w", ErrWriteFailed, path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrWriteFailed, path, err)
	}
	return nil
}
