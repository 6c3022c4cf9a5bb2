package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when acquiring a lock times out.
	ErrLockTimeout = errors.New("timeout acquiring lock")
	// ErrPathRequired is returned when the file path is empty.
	ErrPathRequired = errors.New("file path is required")
	// ErrNilLock is returned when a nil lock handle is given to ReleaseLock.
	ErrNilLock = errors.New("nil lock handle")
)

// pollInterval is the interval to sleep between lock attempts.
const pollInterval = 10 * time.Millisecond

// FileLock is a handle to an OS-level advisory lock on one file.
type FileLock struct {
	FilePath string
	flock    *flock.Flock
}

// Manager hands out per-file advisory locks. A lock is held for the span of
// one mutating call (read, mutate, write) and keeps two mutators in this
// process from interleaving on the same path. It does not replace the hash
// precondition; external writers are still detected only by hash.
type Manager interface {
	AcquireLock(filePath string, timeout time.Duration) (*FileLock, error)
	ReleaseLock(lock *FileLock) error
}

// FlockManager implements Manager with flock(2)-style sidecar lock files.
type FlockManager struct{}

// NewManager initializes and returns a new FlockManager.
func NewManager() *FlockManager {
	return &FlockManager{}
}

var _ Manager = (*FlockManager)(nil)

// AcquireLock attempts to acquire an exclusive lock for the given file,
// polling until the timeout elapses. The lock lives in a ".lock" sidecar
// next to the target so locking never touches the file content itself.
func (m *FlockManager) AcquireLock(filePath string, timeout time.Duration) (*FileLock, error) {
	if filePath == "" {
		return nil, ErrPathRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fileLock := flock.New(filePath + ".lock")
	locked, err := fileLock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("error acquiring file lock for %s: %w", filePath, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &FileLock{FilePath: filePath, flock: fileLock}, nil
}

// ReleaseLock releases the given lock.
func (m *FlockManager) ReleaseLock(lock *FileLock) error {
	if lock == nil {
		return ErrNilLock
	}
	if lock.flock != nil {
		_ = lock.flock.Unlock()
	}
	return nil
}
