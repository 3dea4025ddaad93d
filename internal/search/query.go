// Package search implements the query grammar and ranking described in
// spec.md §4.G: given a cache and a query string, return a ranked sequence
// of results. Grounded on the wire query shape in original_source's
// src/api/query.rs, replayed here against the local cache instead of a
// remote endpoint.
package search

import (
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/version"
)

// PlatformFilter restricts results to packages matching the host (or an
// explicitly requested) architecture/OS/libc triple.
type PlatformFilter struct {
	Architecture string
	OS           string
	Libc         string
}

func (f PlatformFilter) matches(j metadata.JDK) bool {
	if f.Architecture != "" && f.Architecture != j.Architecture {
		return false
	}
	if f.OS != "" && f.OS != j.OS {
		return false
	}
	if f.Libc != "" && f.Libc != j.Libc {
		return false
	}
	return true
}

// Query is a parsed search expression plus the post-match boolean filters
// applied after version/platform matching.
type Query struct {
	Distribution          string // "" means any
	VersionQuery          *version.Version
	Platform              *PlatformFilter
	LTSOnly               bool
	DirectlyDownloadable  bool
	JavaFXBundled         bool
}

// Parse interprets expr using the version grammar (spec.md §4.C): a bare
// version, a bare distribution, distribution@version, or "latest". A bare
// distribution name (no digits, no '@') is recognized by trying Parse and
// falling back to treating the whole string as a distribution id.
func Parse(expr string) (Query, error) {
	v, err := version.Parse(expr)
	if err == nil {
		return Query{Distribution: v.Distribution, VersionQuery: &v}, nil
	}
	// Not a valid version expression; treat as a bare distribution name,
	// e.g. "temurin" with no version component at all.
	return Query{Distribution: metadata.ResolveDistribution(expr).ID}, nil
}
