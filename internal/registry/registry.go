// Package registry scans installed JDKs under the managed home and resolves
// version expressions against them (spec.md §4.K).
package registry

import (
	"os"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/logging"
	"github.com/kopi-vm/kopi-sub003/internal/version"
	"go.uber.org/zap"
)

// Installation is one parsed installations-root directory entry.
type Installation struct {
	Distribution string
	Version      version.Version
	JavaFX       bool
	Dir          string
}

// Scan reads the installations root once, parsing each directory name back
// into (distribution, version, javafx). A malformed name is skipped with a
// warning rather than failing the whole scan. The reserved ".tmp" staging
// subtree is never scanned.
func Scan(paths *kopipath.Registry, logger *zap.SugaredLogger) ([]Installation, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	entries, err := os.ReadDir(paths.InstallationsRoot())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Installation
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		inst, ok := parseDirName(e.Name())
		if !ok {
			logger.Warnw("skipping malformed installation directory", "name", e.Name())
			continue
		}
		inst.Dir = paths.InstallationDir(e.Name())
		out = append(out, inst)
	}
	return out, nil
}

// parseDirName parses "<distribution>-<version>[-fx]" back into its parts.
// The version portion may itself contain '-' (pre-release component), so
// parsing works right-to-left: strip an optional trailing "-fx", then the
// first remaining '-' separates distribution from version.
func parseDirName(name string) (Installation, bool) {
	javafx := false
	body := name
	if strings.HasSuffix(body, "-fx") {
		javafx = true
		body = strings.TrimSuffix(body, "-fx")
	}

	idx := strings.Index(body, "-")
	if idx <= 0 || idx == len(body)-1 {
		return Installation{}, false
	}
	distribution := body[:idx]
	versionText := body[idx+1:]

	expr := distribution + "@" + versionText
	if javafx {
		expr += "+fx"
	}
	v, err := version.Parse(expr)
	if err != nil {
		return Installation{}, false
	}
	return Installation{Distribution: distribution, Version: v, JavaFX: javafx}, true
}

// Resolve returns every installation matching query, per spec.md §4.K's
// matching rules: distribution (if given) must equal; the query version's
// components must prefix-match the installation's; +fx must match
// explicitly when the query specifies it.
func Resolve(installations []Installation, distribution string, query version.Version) []Installation {
	var out []Installation
	for _, inst := range installations {
		if distribution != "" && !strings.EqualFold(distribution, inst.Distribution) {
			continue
		}
		if query.JavaFX && !inst.JavaFX {
			continue
		}
		if !query.IsLatest() && len(query.Components) > 0 && !version.IsPrefixOf(query, inst.Version) {
			continue
		}
		out = append(out, inst)
	}
	return out
}
