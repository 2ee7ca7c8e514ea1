package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output root while a run holds it.
const LockFileName = ".panosort.lock"

// ErrOutputLocked reports that another run is writing the same output tree.
var ErrOutputLocked = errors.New("output folder is locked by another panosort run")

// OutputLock guards an output tree against concurrent runs.
type OutputLock struct {
	lock *flock.Flock
}

// LockOutput creates outputRoot if needed and takes its lock without waiting.
func LockOutput(outputRoot string) (*OutputLock, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	lockPath := filepath.Join(outputRoot, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrOutputLocked, lockPath)
	}
	return &OutputLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *OutputLock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Release unlocks and removes the lock file.
func (l *OutputLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	path := l.lock.Path()
	err := l.lock.Unlock()
	if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	l.lock = nil
	return err
}
