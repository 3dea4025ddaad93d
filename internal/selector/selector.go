// Package selector resolves the active JDK version expression, walking
// environment, project files, and the global version file in that order
// (spec.md §4.L).
package selector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/registry"
	"github.com/kopi-vm/kopi-sub003/internal/version"
)

// EnvVar is the shell environment override, highest precedence.
const EnvVar = "KOPI_VERSION"

// ProjectFileNames are tried in order at each directory level while
// ascending from the working directory.
var ProjectFileNames = []string{".kopi-version", ".java-version"}

// Source identifies which of the three sources supplied the winning
// expression, for diagnostics (`kopi current`, `kopi which`).
type Source int

const (
	SourceNone Source = iota
	SourceEnv
	SourceProjectFile
	SourceGlobalFile
)

// Resolution is the outcome of Resolve.
type Resolution struct {
	Expression string
	Source     Source
	Path       string // project/global file path, empty for SourceEnv
}

// FindExpression walks env → project file → global file, returning the
// first source with non-empty content.
func FindExpression(paths *kopipath.Registry, cwd string) (Resolution, bool, error) {
	if v := strings.TrimSpace(os.Getenv(EnvVar)); v != "" {
		return Resolution{Expression: v, Source: SourceEnv}, true, nil
	}

	if res, ok, err := findProjectFile(cwd); err != nil {
		return Resolution{}, false, err
	} else if ok {
		return res, true, nil
	}

	data, err := os.ReadFile(paths.GlobalVersionFile())
	if err == nil {
		if v := strings.TrimSpace(string(data)); v != "" {
			return Resolution{Expression: v, Source: SourceGlobalFile, Path: paths.GlobalVersionFile()}, true, nil
		}
	} else if !os.IsNotExist(err) {
		return Resolution{}, false, err
	}

	return Resolution{}, false, nil
}

func findProjectFile(cwd string) (Resolution, bool, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return Resolution{}, false, err
	}
	for {
		for _, name := range ProjectFileNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err == nil {
				if v := strings.TrimSpace(string(data)); v != "" {
					return Resolution{Expression: v, Source: SourceProjectFile, Path: path}, true, nil
				}
				continue
			}
			if !os.IsNotExist(err) {
				return Resolution{}, false, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Resolution{}, false, nil
}

// Resolve finds the winning expression and resolves it against installs via
// §4.K's matching rules, returning NoMatchingVersion/AmbiguousVersion on
// zero or multiple matches.
func Resolve(paths *kopipath.Registry, cwd string, installs []registry.Installation) (registry.Installation, Resolution, error) {
	res, ok, err := FindExpression(paths, cwd)
	if err != nil {
		return registry.Installation{}, Resolution{}, err
	}
	if !ok {
		return registry.Installation{}, Resolution{}, &kopierr.NoMatchingVersion{Expression: ""}
	}

	v, err := version.Parse(res.Expression)
	if err != nil {
		return registry.Installation{}, res, err
	}

	matches := registry.Resolve(installs, v.Distribution, v)
	if len(matches) == 0 {
		return registry.Installation{}, res, &kopierr.NoMatchingVersion{Expression: res.Expression}
	}

	if v.IsLatest() {
		best := matches[0]
		for _, m := range matches[1:] {
			if version.Less(best.Version, m.Version) {
				best = m
			}
		}
		return best, res, nil
	}

	if len(matches) == 1 {
		return matches[0], res, nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.Distribution + "@" + m.Version.String()
	}
	return registry.Installation{}, res, &kopierr.AmbiguousVersion{Expression: res.Expression, Candidates: candidates}
}
