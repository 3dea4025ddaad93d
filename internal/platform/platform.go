// Package platform detects the host triple once and exposes the handful of
// operations (permission bits, atomic rename, symlink vs copy, reserved
// names) that every other component needs to behave uniformly across
// operating systems. Detection is cached process-wide and is immutable
// after first read, per spec.md §5.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
)

// Triple identifies the architecture/OS/libc combination of the host, using
// the naming foojay.io (and therefore the metadata providers) expect.
type Triple struct {
	Architecture string
	OS           string
	Libc         string
}

var (
	once     sync.Once
	detected Triple
	detErr   error
)

// Detect returns the cached host triple, performing detection on first call.
func Detect() (Triple, error) {
	once.Do(func() {
		detected, detErr = detect()
	})
	return detected, detErr
}

func detect() (Triple, error) {
	arch, ok := archName(runtime.GOARCH)
	if !ok {
		return Triple{}, fmt.Errorf("%w: architecture %s", kopierr.ErrPlatformUnsupported, runtime.GOARCH)
	}
	osName, ok := osNameFor(runtime.GOOS)
	if !ok {
		return Triple{}, fmt.Errorf("%w: os %s", kopierr.ErrPlatformUnsupported, runtime.GOOS)
	}
	return Triple{Architecture: arch, OS: osName, Libc: libcType()}, nil
}

func archName(goarch string) (string, bool) {
	switch goarch {
	case "amd64":
		return "x64", true
	case "386":
		return "x86", true
	case "arm64":
		return "aarch64", true
	case "arm":
		return "arm32", true
	case "ppc64le":
		return "ppc64le", true
	case "ppc64":
		return "ppc64", true
	case "s390x":
		return "s390x", true
	default:
		return "", false
	}
}

func osNameFor(goos string) (string, bool) {
	switch goos {
	case "linux":
		return "linux", true
	case "windows":
		return "windows", true
	case "darwin":
		return "macos", true
	default:
		return "", false
	}
}

// ExecutableExtension returns ".exe" on Windows and "" elsewhere.
func ExecutableExtension() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// WithExecutableExtension appends ExecutableExtension to name.
func WithExecutableExtension(name string) string {
	return name + ExecutableExtension()
}

// UsesSymlinksForShims reports whether shims should be real symlinks (POSIX)
// or file copies (Windows, which cannot rely on unprivileged symlinks).
func UsesSymlinksForShims() bool {
	return runtime.GOOS != "windows"
}

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsReservedName reports whether name collides with a Windows DOS device
// name. Always false on non-Windows, where no such restriction exists.
func IsReservedName(name string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return reservedNames[strings.ToUpper(name)]
}

// SetExecutable toggles the executable permission bit. No-op on Windows,
// which has no POSIX mode bits to set.
func SetExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode()|0o111)
}

// AtomicRename moves oldPath to newPath such that observers see either the
// previous committed state or the new one, never a partial state. On
// Windows, os.Rename fails if newPath exists, so it is removed first; this
// narrows, but does not eliminate, the crash window — matching the
// platform's own rename semantics rather than emulating POSIX exactly.
func AtomicRename(oldPath, newPath string) error {
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(newPath); err == nil {
			if err := os.RemoveAll(newPath); err != nil {
				return err
			}
		}
	}
	return os.Rename(oldPath, newPath)
}
