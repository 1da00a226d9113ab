package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// LockTimeout bounds how long a store waits for the key lock.
const LockTimeout = 10 * time.Second

// acquire takes the advisory lock at lockPath, shared or exclusive,
// retrying with exponential backoff until LockTimeout elapses.
// The returned function releases the lock.
func acquire(lockPath string, shared bool) (func(), error) {
	lock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = LockTimeout

	err := backoff.Retry(func() error {
		var locked bool
		var err error
		if shared {
			locked, err = lock.TryRLock()
		} else {
			locked, err = lock.TryLock()
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to acquire lock: %w", err))
		}
		if !locked {
			return ErrLockTimeout
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrLockTimeout
	}
	if err != nil {
		return nil, err
	}

	return func() { _ = lock.Unlock() }, nil
}

// acquireShared takes the shared lock for a reader without creating
// anything on disk. When no writer has created the lock file yet, or the
// lock file cannot be opened (read-only mounts), the read proceeds
// unlocked; saves replace the key by rename so a reader never sees a
// partial file.
func acquireShared(lockPath string) (func(), error) {
	if _, err := os.Stat(lockPath); errors.Is(err, fs.ErrNotExist) {
		return func() {}, nil
	}

	unlock, err := acquire(lockPath, true)
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EROFS) || errors.Is(err, fs.ErrNotExist) {
		return func() {}, nil
	}
	return unlock, err
}
