package locking

import (
	"errors"
	"os"
)

// fallbackBackend is used on filesystems known to mishandle advisory locks
// (NFS, SMB, some FUSE mounts) or when the user forces fallback mode via
// configuration. It creates both the lock file and a sibling ".marker" file
// with O_CREAT|O_EXCL; either existing means someone else holds the lock.
type fallbackBackend struct{}

func (fallbackBackend) name() string { return "fallback" }

type fallbackHandle struct {
	path       string
	markerPath string
}

func (h fallbackHandle) Release() error {
	err1 := os.Remove(h.path)
	err2 := os.Remove(h.markerPath)
	if err1 != nil {
		return err1
	}
	return err2
}

func (h fallbackHandle) Backend() string { return "fallback" }

func (fallbackBackend) tryAcquire(path string) (Handle, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	markerPath := path + ".marker"

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, nil
		}
		return nil, err
	}
	f.Close()

	m, err := os.OpenFile(markerPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		os.Remove(path)
		if errors.Is(err, os.ErrExist) {
			return nil, nil
		}
		return nil, err
	}
	m.Close()

	return fallbackHandle{path: path, markerPath: markerPath}, nil
}
