// Package version implements the grammar described in spec.md §4.C: parsing,
// formatting, comparison, and prefix matching of JDK version expressions.
//
//	expr := [ distribution "@" ] version_body [ "+fx" ]
//	version_body := number ("." number)* [ "-" prerelease ] [ "+" build ]
//
// Parsing never touches the network and never returns a partially-populated
// Version on error.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
)

// Version is an ordered sequence of unsigned integer components plus the
// optional pre-release/build labels and the javafx flag described in
// spec.md §3.
type Version struct {
	Distribution string // empty if the expression carried none
	Components   []uint64
	PreRelease   string // empty if absent
	Build        string // empty if absent; ignored for ordering, kept for display
	JavaFX       bool

	latestKeyword bool
}

// Latest is the reserved keyword meaning "the numerically greatest version
// available".
const Latest = "latest"

// IsLatest reports whether the parsed expression was the bare "latest"
// keyword (optionally distribution-scoped, e.g. "temurin@latest").
func (v Version) IsLatest() bool {
	return len(v.Components) == 0 && v.PreRelease == "" && v.Build == "" && v.latestKeyword
}

// Parse parses an expr string into a Version. Returns
// kopierr.ErrInvalidVersionFormat (wrapped with detail) for anything that
// does not match the grammar, including an empty component list or an
// explicitly-empty distribution (a bare "@" before the body).
func Parse(expr string) (Version, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Version{}, fmt.Errorf("%w: empty expression", kopierr.ErrInvalidVersionFormat)
	}

	var v Version
	rest := expr

	if idx := strings.IndexByte(rest, '@'); idx != -1 {
		dist := rest[:idx]
		if dist == "" {
			return Version{}, fmt.Errorf("%w: empty distribution before '@'", kopierr.ErrInvalidVersionFormat)
		}
		v.Distribution = strings.ToLower(dist)
		rest = rest[idx+1:]
	}

	if strings.HasSuffix(rest, "+fx") {
		v.JavaFX = true
		rest = strings.TrimSuffix(rest, "+fx")
	}

	if rest == "" {
		return Version{}, fmt.Errorf("%w: empty version body", kopierr.ErrInvalidVersionFormat)
	}

	if rest == Latest {
		v.latestKeyword = true
		return v, nil
	}

	body, build, hasBuild := strings.Cut(rest, "+")
	if hasBuild {
		if build == "" {
			return Version{}, fmt.Errorf("%w: empty build metadata after '+'", kopierr.ErrInvalidVersionFormat)
		}
		v.Build = build
	}

	body, pre, hasPre := strings.Cut(body, "-")
	if hasPre {
		if pre == "" {
			return Version{}, fmt.Errorf("%w: empty pre-release after '-'", kopierr.ErrInvalidVersionFormat)
		}
		v.PreRelease = pre
	}

	if body == "" {
		return Version{}, fmt.Errorf("%w: empty component list", kopierr.ErrInvalidVersionFormat)
	}

	for _, part := range strings.Split(body, ".") {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty version component in %q", kopierr.ErrInvalidVersionFormat, expr)
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: non-numeric component %q", kopierr.ErrInvalidVersionFormat, part)
		}
		v.Components = append(v.Components, n)
	}

	return v, nil
}

// String formats v back into expr grammar. Round-trips through Parse modulo
// order-insignificant fields (per spec.md §8).
func (v Version) String() string {
	var b strings.Builder
	if v.Distribution != "" {
		b.WriteString(v.Distribution)
		b.WriteByte('@')
	}
	if v.latestKeyword {
		b.WriteString(Latest)
	} else {
		for i, c := range v.Components {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(strconv.FormatUint(c, 10))
		}
		if v.PreRelease != "" {
			b.WriteByte('-')
			b.WriteString(v.PreRelease)
		}
		if v.Build != "" {
			b.WriteByte('+')
			b.WriteString(v.Build)
		}
	}
	if v.JavaFX {
		b.WriteString("+fx")
	}
	return b.String()
}

// Compare orders a against b: component lists compare left-to-right with
// missing trailing components on the shorter side treated as 0, a
// pre-release version sorts before the same version without one, and build
// metadata is ignored. Returns -1, 0, or 1.
func Compare(a, b Version) int {
	n := len(a.Components)
	if len(b.Components) > n {
		n = len(b.Components)
	}
	for i := 0; i < n; i++ {
		var ca, cb uint64
		if i < len(a.Components) {
			ca = a.Components[i]
		}
		if i < len(b.Components) {
			cb = b.Components[i]
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}

	aPre, bPre := a.PreRelease != "", b.PreRelease != ""
	if aPre != bPre {
		// pre_release.is_some() < pre_release.is_none()
		if aPre {
			return -1
		}
		return 1
	}
	if aPre && bPre && a.PreRelease != b.PreRelease {
		return strings.Compare(a.PreRelease, b.PreRelease)
	}
	return 0
}

// Less reports whether a sorts strictly before b; a convenience wrapper
// around Compare for sort.Slice callers.
func Less(a, b Version) bool {
	return Compare(a, b) < 0
}

// IsPrefixOf reports whether query's components are a prefix of full's
// components — the matching rule used throughout §4.K/§4.L ("21" matches
// "21.0.1"). An empty query component list matches everything. The +fx
// modifier, when present on query, must match full's exactly; its absence
// on query never excludes a javafx install (per spec.md §8's liberica
// example).
func IsPrefixOf(query, full Version) bool {
	if query.Distribution != "" && !strings.EqualFold(query.Distribution, full.Distribution) {
		return false
	}
	if query.JavaFX && !full.JavaFX {
		return false
	}
	if len(query.Components) > len(full.Components) {
		return false
	}
	for i, c := range query.Components {
		if full.Components[i] != c {
			return false
		}
	}
	return true
}
