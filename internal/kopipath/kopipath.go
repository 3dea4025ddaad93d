// Package kopipath is the single source of truth for every filesystem
// location under the managed home directory (spec.md §4.A). Every other
// component obtains paths by calling these functions; joining literal path
// segments to the home elsewhere is forbidden so the on-disk layout only
// ever has one definition.
package kopipath

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/platform"
)

// Registry resolves every path under a managed home directory.
type Registry struct {
	home string
}

// New builds a Registry rooted at home. Callers normally obtain home from
// Resolve, which applies the KOPI_HOME override.
func New(home string) *Registry {
	return &Registry{home: home}
}

// Resolve determines the managed home directory: $KOPI_HOME if set,
// otherwise a per-OS default under the user's home directory.
func Resolve() (string, error) {
	if home := os.Getenv("KOPI_HOME"); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userHome, ".kopi"), nil
}

// Home returns the managed home directory root.
func (r *Registry) Home() string { return r.home }

// InstallationsRoot returns $KOPI_HOME/jdks.
func (r *Registry) InstallationsRoot() string {
	return filepath.Join(r.home, "jdks")
}

// InstallationDir returns the final directory for an installation slug.
func (r *Registry) InstallationDir(slug string) string {
	return filepath.Join(r.InstallationsRoot(), Sanitize(slug))
}

// InstallationMetaPath returns the sibling metadata JSON path for slug.
func (r *Registry) InstallationMetaPath(slug string) string {
	return filepath.Join(r.InstallationsRoot(), Sanitize(slug)+".meta.json")
}

// StagingRoot returns $KOPI_HOME/jdks/.tmp, the reserved-name subtree the
// installed-JDK registry never scans (spec.md §5).
func (r *Registry) StagingRoot() string {
	return filepath.Join(r.InstallationsRoot(), ".tmp")
}

// StagingDir returns a staging directory for slug with a random suffix,
// e.g. jdks/.tmp/temurin-21-jdk-<rand>.
func (r *Registry) StagingDir(slug, suffix string) string {
	return filepath.Join(r.StagingRoot(), Sanitize(slug)+"-"+suffix)
}

// CacheDir returns $KOPI_HOME/cache.
func (r *Registry) CacheDir() string {
	return filepath.Join(r.home, "cache")
}

// CacheFile returns $KOPI_HOME/cache/metadata.json.
func (r *Registry) CacheFile() string {
	return filepath.Join(r.CacheDir(), "metadata.json")
}

// CacheStagingDir returns $KOPI_HOME/cache/tmp, used for the write-temp-then-
// rename pattern that keeps cache reads lock-free (spec.md §4.E).
func (r *Registry) CacheStagingDir() string {
	return filepath.Join(r.CacheDir(), "tmp")
}

// ShimsRoot returns $KOPI_HOME/shims.
func (r *Registry) ShimsRoot() string {
	return filepath.Join(r.home, "shims")
}

// ShimPath returns the per-tool shim replica path, e.g. shims/java[.exe].
func (r *Registry) ShimPath(tool string) string {
	return filepath.Join(r.ShimsRoot(), platform.WithExecutableExtension(Sanitize(tool)))
}

// ShimLauncherPath returns $KOPI_HOME/bin/kopi-shim[.exe], the canonical
// binary every per-tool shim replicates.
func (r *Registry) ShimLauncherPath() string {
	return filepath.Join(r.home, "bin", platform.WithExecutableExtension("kopi-shim"))
}

// LocksRoot returns $KOPI_HOME/locks.
func (r *Registry) LocksRoot() string {
	return filepath.Join(r.home, "locks")
}

// CacheLockPath returns the CacheWriter scope's lock file.
func (r *Registry) CacheLockPath() string {
	return filepath.Join(r.LocksRoot(), "cache.lock")
}

// ConfigLockPath returns the GlobalConfig scope's lock file.
func (r *Registry) ConfigLockPath() string {
	return filepath.Join(r.LocksRoot(), "config.lock")
}

// InstallLockPath returns an Installation scope's lock file, segregated by
// distribution under locks/install/<dist>/ so a single hot directory never
// forms under heavy concurrent installs across many distributions.
func (r *Registry) InstallLockPath(distribution, slug string) string {
	return filepath.Join(r.LocksRoot(), "install", Sanitize(distribution), Sanitize(slug)+".lock")
}

// GlobalVersionFile returns $KOPI_HOME/version, the user-global default
// version expression file.
func (r *Registry) GlobalVersionFile() string {
	return filepath.Join(r.home, "version")
}

// ConfigFile returns $KOPI_HOME/config.yaml.
func (r *Registry) ConfigFile() string {
	return filepath.Join(r.home, "config.yaml")
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize lowercases s and collapses every run of non-alphanumeric
// characters to a single '-', falling back to "default" for an empty
// result. Also rejects Windows-reserved device names by appending a
// trailing '-' so a slug can never collide with CON, NUL, etc.
func Sanitize(s string) string {
	lowered := strings.ToLower(s)
	collapsed := strings.Trim(nonAlphanumeric.ReplaceAllString(lowered, "-"), "-")
	if collapsed == "" {
		collapsed = "default"
	}
	if platform.IsReservedName(collapsed) {
		collapsed += "-"
	}
	return collapsed
}
