//go:build !windows

package locking

import (
	"os"

	"golang.org/x/sys/unix"
)

type advisoryBackend struct{}

func (advisoryBackend) name() string { return "advisory" }

type advisoryHandle struct {
	file *os.File
}

func (h advisoryHandle) Release() error {
	defer h.file.Close()
	return unix.Flock(int(h.file.Fd()), unix.LOCK_UN)
}

func (h advisoryHandle) Backend() string { return "advisory" }

func (advisoryBackend) tryAcquire(path string) (Handle, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, nil
		}
		return nil, err
	}
	return advisoryHandle{file: f}, nil
}
