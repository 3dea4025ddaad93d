//go:build linux

package locking

import "golang.org/x/sys/unix"

// Linux statfs magic numbers for filesystems known to mishandle POSIX
// advisory locks closely enough that the fallback backend is safer.
const (
	nfsSuperMagic  = 0x6969
	smbSuperMagic  = 0x517b
	fuseSuperMagic = 0x65735546
)

func filesystemNeedsFallback(dir string) bool {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return false
	}
	switch int64(st.Type) {
	case nfsSuperMagic, smbSuperMagic, fuseSuperMagic:
		return true
	default:
		return false
	}
}
