package locking

import (
	"os"
	"path/filepath"
)

// Handle represents a held lock. Release must be idempotent-safe to call
// once; callers typically defer it immediately after a successful Acquire.
type Handle interface {
	Release() error
	Backend() string
}

// backend is the pluggable strategy for turning a lock file path into a held
// Handle. TryAcquire returns (nil, nil) when the lock is currently held by
// someone else, so the caller's polling loop can retry without treating
// contention as an error.
type backend interface {
	name() string
	tryAcquire(path string) (Handle, error)
}

func ensureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
