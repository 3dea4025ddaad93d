// Package install implements the installation orchestrator pipeline:
// resolve → lock → stage → download → verify → extract → normalize →
// finalize (spec.md §4.J).
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kopi-vm/kopi-sub003/internal/archive"
	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/download"
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/locking"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
	"github.com/kopi-vm/kopi-sub003/internal/progress"
	"go.uber.org/zap"
)

// StagingMaxAge is how old a pre-existing staging directory must be before
// it's considered crash debris and removed ahead of a fresh install.
const StagingMaxAge = time.Hour

// Options configures one install operation.
type Options struct {
	Force           bool // skip the AlreadyInstalled check
	LockTimeout     time.Duration
	ForceFallback   bool
	DownloadOptions download.Options
}

// Orchestrator runs the install pipeline for a single coordinate.
type Orchestrator struct {
	Paths      *kopipath.Registry
	Locks      *locking.Controller
	Downloader *download.Client
	Logger     *zap.SugaredLogger
}

func (o *Orchestrator) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Nop()
}

// InstallMeta is the per-installation metadata JSON written alongside the
// final directory (spec.md §4.M reads java_home_suffix from it).
type InstallMeta struct {
	Distribution    string `json:"distribution"`
	Version         string `json:"version"`
	JavaFX          bool   `json:"javafx"`
	JavaHomeSuffix  string `json:"java_home_suffix"`
	InstalledAt     string `json:"installed_at"`
}

// Install runs the full pipeline for pkg, returning the final installation
// directory on success.
func (o *Orchestrator) Install(ctx context.Context, pkg metadata.JDK, token cancel.Token, reporter progress.Reporter, opts Options) (string, error) {
	if !pkg.Complete() {
		return "", fmt.Errorf("%w: metadata record has no download URL or checksum", kopierr.ErrNotInstalled)
	}
	if reporter == nil {
		reporter = progress.Noop{}
	}

	dirName := metadata.InstallDirName(pkg.Distribution, pkg.Version, pkg.JavaFX)
	finalDir := o.Paths.InstallationDir(dirName)

	if !opts.Force {
		if _, err := os.Stat(finalDir); err == nil {
			return "", fmt.Errorf("%w: %s", kopierr.ErrAlreadyInstalled, dirName)
		}
	}

	coordinate := pkg.Coordinate()
	scope := locking.InstallationScope{Coordinate: coordinate}
	handle, err := o.Locks.Acquire(scope, token, locking.Options{Timeout: opts.LockTimeout, ForceFallback: opts.ForceFallback})
	if err != nil {
		return "", err
	}
	defer handle.Release()

	stagingDir := o.Paths.StagingDir(dirName, uuid.NewString())
	if err := o.prepareStagingDir(dirName, stagingDir); err != nil {
		return "", err
	}
	defer func() {
		// On any failure path below, this no-ops once the directory has
		// already been renamed away at step 7.
		os.RemoveAll(stagingDir)
	}()

	reporter.SetMessage("downloading " + pkg.Distribution + " " + pkg.Version)
	archivePath := filepath.Join(o.Paths.StagingRoot(), "."+filepath.Base(stagingDir)+archiveSuffix(pkg.ArchiveKind))
	result, err := o.Downloader.Fetch(ctx, pkg, archivePath, opts.DownloadOptions)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)
	reporter.Update(result.Size)

	reporter.SetMessage("extracting " + pkg.Distribution + " " + pkg.Version)
	kind := archive.TarGz
	if pkg.ArchiveKind == metadata.ArchiveZip {
		kind = archive.Zip
	}
	if err := archive.Extract(archivePath, kind, stagingDir); err != nil {
		return "", err
	}

	javaHomeSuffix := detectJavaHomeSuffix(stagingDir)
	meta := InstallMeta{
		Distribution:   pkg.Distribution,
		Version:        pkg.Version,
		JavaFX:         pkg.JavaFX,
		JavaHomeSuffix: javaHomeSuffix,
		InstalledAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := writeInstallMeta(o.Paths.InstallationMetaPath(dirName)+".staging", meta); err != nil {
		return "", err
	}

	if err := platform.AtomicRename(stagingDir, finalDir); err != nil {
		return "", err
	}
	if err := platform.AtomicRename(o.Paths.InstallationMetaPath(dirName)+".staging", o.Paths.InstallationMetaPath(dirName)); err != nil {
		return "", err
	}

	reporter.Complete()
	return finalDir, nil
}

// Uninstall removes a final installation directory and its sibling
// metadata file under the same Installation lock scope used by Install.
func (o *Orchestrator) Uninstall(coordinate metadata.Coordinate, dirName string, token cancel.Token) error {
	scope := locking.InstallationScope{Coordinate: coordinate}
	handle, err := o.Locks.Acquire(scope, token, locking.Options{})
	if err != nil {
		return err
	}
	defer handle.Release()

	finalDir := o.Paths.InstallationDir(dirName)
	if _, err := os.Stat(finalDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", kopierr.ErrNotInstalled, dirName)
	}
	if err := os.RemoveAll(finalDir); err != nil {
		return err
	}
	metaPath := o.Paths.InstallationMetaPath(dirName)
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func archiveSuffix(kind metadata.ArchiveKind) string {
	if kind == metadata.ArchiveZip {
		return ".zip"
	}
	return ".tar.gz"
}

// prepareStagingDir removes crash debris from previous attempts at the same
// installation (staging directories named after dirName that are older than
// StagingMaxAge), then creates a fresh directory.
func (o *Orchestrator) prepareStagingDir(dirName, stagingDir string) error {
	prefix := kopipath.Sanitize(dirName) + "-"
	entries, _ := os.ReadDir(o.Paths.StagingRoot())
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if info, err := e.Info(); err == nil && time.Since(info.ModTime()) > StagingMaxAge {
			if err := os.RemoveAll(filepath.Join(o.Paths.StagingRoot(), e.Name())); err != nil {
				return err
			}
		}
	}
	return os.MkdirAll(stagingDir, 0o755)
}

// detectJavaHomeSuffix locates the directory under the extracted tree that
// actually contains bin/java[.exe], so a distribution that nests its JDK
// under e.g. "Contents/Home" on macOS still resolves correctly.
func detectJavaHomeSuffix(root string) string {
	candidates := []string{".", "Contents/Home"}
	for _, c := range candidates {
		javaPath := filepath.Join(root, c, "bin", platform.WithExecutableExtension("java"))
		if _, err := os.Stat(javaPath); err == nil {
			return filepath.ToSlash(c)
		}
	}
	return "."
}
