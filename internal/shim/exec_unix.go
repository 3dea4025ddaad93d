//go:build !windows

package shim

import "golang.org/x/sys/unix"

// execReplace replaces the current process image via execve, forwarding
// args and env unchanged. It never returns on success.
func execReplace(binPath string, args []string, env []string) error {
	return unix.Exec(binPath, args, env)
}
