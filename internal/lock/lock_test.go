package lock

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")
	held, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := held.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	// Re-acquirable after release.
	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("release again: %v", err)
	}
}

func TestAcquireHeldLockFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")
	held, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer func() { _ = held.Release() }()

	prev := flockFn
	flockFn = func(fd int, how int) error {
		if how == unix.LOCK_EX|unix.LOCK_NB {
			return unix.EWOULDBLOCK
		}
		return prev(fd, how)
	}
	defer func() { flockFn = prev }()

	_, err = Acquire(path)
	if err == nil {
		t.Fatal("expected held lock to fail fast")
	}
	if !strings.Contains(err.Error(), "another sync is already running") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReleaseNilLock(t *testing.T) {
	var held *Lock
	if err := held.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}

func TestWithReleasesOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.lock")
	wantErr := errors.New("boom")
	if err := With(path, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error, got %v", err)
	}
	// Lock must be free again even though fn failed.
	held, err := Acquire(path)
	if err != nil {
		t.Fatalf("lock not released after error: %v", err)
	}
	_ = held.Release()
}
