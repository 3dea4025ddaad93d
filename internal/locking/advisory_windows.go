//go:build windows

package locking

import (
	"os"

	"golang.org/x/sys/windows"
)

type advisoryBackend struct{}

func (advisoryBackend) name() string { return "advisory" }

type advisoryHandle struct {
	file *os.File
}

func (h advisoryHandle) Release() error {
	defer h.file.Close()
	return windows.UnlockFileEx(windows.Handle(h.file.Fd()), 0, 1, 0, &windows.Overlapped{})
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
	ol := &windows.Overlapped{}
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, 1, 0, ol); err != nil {
		f.Close()
		if err == windows.ERROR_LOCK_VIOLATION || err == windows.ERROR_IO_PENDING {
			return nil, nil
		}
		return nil, err
	}
	return advisoryHandle{file: f}, nil
}
