package storage

import (
	"os"
	"path/filepath"
	"syscall"
)

// lockSuffix names the lock file guarding a JSON state file.
const lockSuffix = ".lock"

// FileLock is an exclusive advisory lock held through flock(2).
// Concurrent numclean processes use it to serialize read-modify-write
// cycles on the same state file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the lock is held, creating the lock file if needed.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return &FileError{Op: "lock", Path: l.path, Err: err}
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return &FileError{Op: "lock", Path: l.path, Err: err}
	}

	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking an unheld lock is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WithLock runs fn while holding the lock that guards path.
// The parent directory of path is created first.
func WithLock(path string, fn func() error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := NewFileLock(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if uerr := lock.Unlock(); err == nil {
			err = uerr
		}
	}()

	return fn()
}
