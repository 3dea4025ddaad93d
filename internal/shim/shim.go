// Package shim implements the dispatcher entrypoint every per-tool shim
// replica runs: resolve the active version, locate the tool binary, and
// replace the current process with it (spec.md §4.M). The hot path (steps
// 1, 3, 4) must stay under the 50ms budget: no network I/O, no cache parse,
// no lock acquisition.
package shim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/install"
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
	"github.com/kopi-vm/kopi-sub003/internal/registry"
	"github.com/kopi-vm/kopi-sub003/internal/selector"
)

// ToolName extracts the dispatched tool's name from argv[0]'s basename
// (either '/' or '\' counts as a separator), stripping a Windows ".exe"
// suffix.
func ToolName(argv0 string) string {
	base := argv0[strings.LastIndexAny(argv0, `/\`)+1:]
	return strings.TrimSuffix(base, ".exe")
}

// Resolve determines which installation should handle a shim invocation by
// running the version selector over the scanned installations, and returns
// that installation's directory together with the installation itself.
// ToolBinaryPath locates the tool inside it.
func Resolve(paths *kopipath.Registry, cwd string) (dir string, inst registry.Installation, err error) {
	installs, err := registry.Scan(paths, nil)
	if err != nil {
		return "", registry.Installation{}, err
	}

	chosen, _, err := selector.Resolve(paths, cwd, installs)
	if err != nil {
		return "", registry.Installation{}, err
	}

	return chosen.Dir, chosen, nil
}

// ToolBinaryPath joins an installation directory, the java_home_suffix read
// from its metadata JSON, "bin", and the tool name with the platform's
// executable extension. When the metadata is absent, unreadable or has no
// suffix, it probes: "Contents/Home" if the tool exists there, else ".".
func ToolBinaryPath(paths *kopipath.Registry, inst registry.Installation, tool string) string {
	dirName := filepath.Base(inst.Dir)
	suffix := "."
	if meta, err := install.ReadInstallMeta(paths.InstallationMetaPath(dirName)); err == nil && meta.JavaHomeSuffix != "" {
		suffix = meta.JavaHomeSuffix
	} else if _, statErr := os.Stat(filepath.Join(inst.Dir, "Contents", "Home", "bin", platform.WithExecutableExtension(tool))); statErr == nil {
		suffix = "Contents/Home"
	}
	return filepath.Join(inst.Dir, filepath.FromSlash(suffix), "bin", platform.WithExecutableExtension(tool))
}

// Dispatch resolves the active JDK, computes the target binary path, and
// replaces the current process with it (POSIX exec, Windows spawn+forward).
// args is the full argv including argv[0]; env is forwarded unchanged.
func Dispatch(paths *kopipath.Registry, cwd string, args []string, env []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: empty argv", kopierr.ErrNotInstalled)
	}
	tool := ToolName(args[0])

	_, inst, err := Resolve(paths, cwd)
	if err != nil {
		return err
	}

	binPath := ToolBinaryPath(paths, inst, tool)
	if _, statErr := os.Stat(binPath); statErr != nil {
		return fmt.Errorf("%w: tool binary not found at %s", kopierr.ErrNotInstalled, binPath)
	}

	return execReplace(binPath, args, env)
}
