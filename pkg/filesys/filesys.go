// Package filesys provides the small set of file system primitives the
// storage engine needs: checking a segment path exists, and
// creating/removing segment and compaction files.
package filesys

import (
	"errors"
	"os"
)

// Exists checks if a file or directory at the given path exists. It
// returns true if the path exists, false if it does not, and an error if
// there's any other issue checking its status.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CreateFile creates a new file at the specified path.
//
// If the file already exists:
//   - If 'force' is true, it truncates and overwrites the existing file.
//   - If 'force' is false, it returns an error.
func CreateFile(filePath string, force bool) (*os.File, error) {
	_, err := os.Stat(filePath)
	if !force && err == nil {
		return nil, os.ErrExist
	}
	return os.Create(filePath)
}

// DeleteFile deletes the file at the specified path. It returns an error if
// the file cannot be removed.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
