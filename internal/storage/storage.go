// Package storage provides atomic file writes for numclean output and for
// JSON state in ~/.numclean/
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir returns the path to ~/.numclean/.
// The directory is created on first save.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".numclean"), nil
}

// WriteFileAtomic creates path by writing to a temporary file in the same
// directory and renaming it into place once write returns without error.
// The temporary file is removed on any failure, so path is either left
// untouched or fully replaced.
//
// A symlink at path is followed and its target is replaced. An existing
// regular file keeps its permission bits; new files get perm.
//
// Errors returned by write are passed through unwrapped. Errors resolving,
// creating, closing or renaming the file are wrapped in a *FileError.
func WriteFileAtomic(path string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	target, mode, err := resolveTarget(path, perm)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := f.Chmod(mode); err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}

	if err := write(f); err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return &FileError{Op: "close", Path: path, Err: err}
	}

	if err := os.Rename(f.Name(), target); err != nil {
		return &FileError{Op: "rename", Path: path, Err: err}
	}

	return nil
}

// resolveTarget follows a symlink at path and returns the file to replace
// along with the mode the replacement should carry.
func resolveTarget(path string, perm os.FileMode) (string, os.FileMode, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, perm, nil
	}
	if err != nil {
		return "", 0, &FileError{Op: "resolve", Path: path, Err: err}
	}

	target := path
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err = filepath.EvalSymlinks(path); err != nil {
			return "", 0, &FileError{Op: "resolve", Path: path, Err: err}
		}
		if info, err = os.Stat(target); err != nil {
			return "", 0, &FileError{Op: "resolve", Path: path, Err: err}
		}
	}

	if info.Mode().IsRegular() {
		return target, info.Mode().Perm(), nil
	}
	return target, perm, nil
}

// FileError records a failed file system step of WriteFileAtomic.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists before writing.
func SaveJSON(path string, data any) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	return WriteFileAtomic(path, 0o600, func(w io.Writer) error {
		_, err := w.Write(jsonData)
		return err
	})
}

// LoadJSON reads JSON from the specified path into dest.
// Returns an error matching os.ErrNotExist if the file doesn't exist
// (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// IsNotExist reports whether err means the file was missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
