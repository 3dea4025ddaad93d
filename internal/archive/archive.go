// Package archive extracts tar.gz and zip JDK distributions into a staging
// directory and normalizes their layout (spec.md §4.I).
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
)

// Kind identifies the archive container format.
type Kind string

const (
	TarGz Kind = "tar.gz"
	Zip   Kind = "zip"
)

// Extract unpacks archivePath (of the given kind) into destDir, then
// flattens a single top-level directory if present. destDir must already
// exist and be empty.
func Extract(archivePath string, kind Kind, destDir string) error {
	var err error
	switch kind {
	case TarGz:
		err = extractTarGz(archivePath, destDir)
	case Zip:
		err = extractZip(archivePath, destDir)
	default:
		return fmt.Errorf("%w: unknown archive kind %q", kopierr.ErrArchiveCorrupt, kind)
	}
	if err != nil {
		return err
	}
	return flattenSingleRoot(destDir)
}

func validateEntryPath(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: absolute path %q", kopierr.ErrArchiveUnsafePath, name)
	}
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if part == ".." {
			return "", fmt.Errorf("%w: path escapes staging root %q", kopierr.ErrArchiveUnsafePath, name)
		}
	}
	return clean, nil
}

func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: %v", kopierr.ErrArchiveCorrupt, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", kopierr.ErrArchiveCorrupt, err)
		}

		relPath, err := validateEntryPath(hdr.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, relPath)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkSymlinkEscapes(destDir, target, hdr.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			mode := os.FileMode(hdr.Mode) & 0o777
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			out.Close()
			if !platform.UsesSymlinksForShims() {
				// On Windows, POSIX mode bits are meaningless; skip chmod.
				continue
			}
			os.Chmod(target, mode)
		default:
			// Skip device files, fifos, and other entries a JDK archive
			// never legitimately contains.
		}
	}
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", kopierr.ErrArchiveCorrupt, err)
	}
	defer r.Close()

	for _, entry := range r.File {
		relPath, err := validateEntryPath(entry.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(destDir, relPath)

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%w: %v", kopierr.ErrArchiveCorrupt, err)
		}
		mode := entry.Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			rc.Close()
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return err
		}
		out.Close()
		rc.Close()
	}
	return nil
}

// checkSymlinkEscapes rejects a symlink whose target would resolve outside
// destRoot, whether the link target is absolute or a relative traversal.
func checkSymlinkEscapes(destRoot, linkPath, linkTarget string) error {
	var resolved string
	if filepath.IsAbs(linkTarget) {
		resolved = filepath.Clean(linkTarget)
	} else {
		resolved = filepath.Clean(filepath.Join(filepath.Dir(linkPath), linkTarget))
	}
	rel, err := filepath.Rel(destRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: symlink %q escapes staging root", kopierr.ErrArchiveUnsafePath, linkPath)
	}
	return nil
}

// flattenSingleRoot detects the "single top-level directory" pattern: if
// destDir contains exactly one entry and it's a directory, its contents are
// moved up into destDir and the now-empty wrapper directory is removed.
func flattenSingleRoot(destDir string) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return err
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}

	wrapper := filepath.Join(destDir, entries[0].Name())
	inner, err := os.ReadDir(wrapper)
	if err != nil {
		return err
	}
	for _, e := range inner {
		if err := os.Rename(filepath.Join(wrapper, e.Name()), filepath.Join(destDir, e.Name())); err != nil {
			return err
		}
	}
	return os.Remove(wrapper)
}
