package main

import (
	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/registry"
	"github.com/kopi-vm/kopi-sub003/internal/shim"
	"github.com/kopi-vm/kopi-sub003/internal/version"
)

// scanInstallations lists every installed JDK under the active KOPI_HOME.
func scanInstallations(app *appContext) ([]registry.Installation, error) {
	return registry.Scan(app.paths, app.logger)
}

// parseSelector parses a user-supplied version expression into the
// comparable form registry.Resolve expects.
func parseSelector(expr string) (version.Version, error) {
	return version.Parse(expr)
}

// filterInstallations narrows installs down to those matching v's
// distribution, javafx flag, and version prefix.
func filterInstallations(installs []registry.Installation, v version.Version) []registry.Installation {
	return registry.Resolve(installs, v.Distribution, v)
}

// pickOne applies the same latest/ambiguity rules as selector.Resolve to an
// already-filtered match set, for commands that resolve an explicit
// expression rather than the env/project/global chain.
func pickOne(expr string, matches []registry.Installation, v version.Version) (registry.Installation, error) {
	if len(matches) == 0 {
		return registry.Installation{}, &kopierr.NoMatchingVersion{Expression: expr}
	}

	if v.IsLatest() {
		best := matches[0]
		for _, m := range matches[1:] {
			if version.Less(best.Version, m.Version) {
				best = m
			}
		}
		return best, nil
	}

	if len(matches) == 1 {
		return matches[0], nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.Distribution + "@" + m.Version.String()
	}
	return registry.Installation{}, &kopierr.AmbiguousVersion{Expression: expr, Candidates: candidates}
}

// toolBinaryPath resolves the full path to a tool binary within inst.
func toolBinaryPath(app *appContext, inst registry.Installation, tool string) string {
	return shim.ToolBinaryPath(app.paths, inst, tool)
}
