// Package lock guards plan execution with a named advisory file lock.
// flock(2) state is owned by the kernel and tied to the open descriptor,
// so a crashed holder releases automatically; no staleness timeout needed.
// Preview-only reconcile runs never take the lock: they write nothing.
package lock

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/mrgoonie/claudekit/internal/messages"
)

var flockFn = unix.Flock

// Lock is a held exclusive advisory lock.
type Lock struct {
	file *os.File
	path string
}

// Acquire opens or creates path and takes an exclusive lock, failing fast
// with a descriptive error when another process holds it. It never blocks
// or queues.
func Acquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.ExecuteOpenLockFmt, path, err)
	}
	if err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, fmt.Errorf(messages.ExecuteLockHeldFmt, path, err)
		}
		return nil, fmt.Errorf(messages.ExecuteOpenLockFmt, path, err)
	}
	return &Lock{file: file, path: path}, nil
}

// Release unlocks and closes the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := flockFn(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return fmt.Errorf(messages.ExecuteReleaseLockFmt, l.path, unlockErr)
	}
	return closeErr
}

// With acquires the lock, runs fn, and releases on every path out.
func With(path string, fn func() error) error {
	held, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = held.Release()
	}()
	return fn()
}
