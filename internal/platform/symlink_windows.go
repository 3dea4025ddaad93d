//go:build windows

package platform

import "io"
import "os"

// CreateSymlink copies the target file instead of symlinking, since
// unprivileged Windows processes usually cannot create symlinks.
func CreateSymlink(target, link string) error {
	src, err := os.Open(target)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(link, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// VerifySymlink reports whether link exists as a regular file, since
// Windows shims are copies rather than symlinks.
func VerifySymlink(link, _ string) (bool, error) {
	info, err := os.Stat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
