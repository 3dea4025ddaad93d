package search

import (
	"sort"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/version"
)

// matchRank classifies how closely a candidate matched the query's version
// expression. Lower values rank first.
type matchRank int

const (
	rankExact matchRank = iota
	rankPrefix
	rankFuzzy
)

// Result pairs a matched package with the rank it was found at, for callers
// that want to inspect why something matched (e.g. `search` command output).
type Result struct {
	Package metadata.JDK
	Rank    matchRank
}

// Run evaluates query against every package entry in cache, returning
// matches ordered by rank, then newer-first, then LTS-before-STS, then
// GA-before-EA.
func Run(entries []metadata.JDK, q Query) []Result {
	var results []Result
	for _, pkg := range entries {
		if q.Distribution != "" && q.Distribution != pkg.Distribution {
			continue
		}
		if q.Platform != nil && !q.Platform.matches(pkg) {
			continue
		}
		if q.LTSOnly && pkg.TermOfSupport != metadata.TermLTS {
			continue
		}
		if q.DirectlyDownloadable && pkg.DownloadURL == "" {
			continue
		}
		if q.JavaFXBundled && !pkg.JavaFX {
			continue
		}

		rank, ok := rankOf(q.VersionQuery, pkg)
		if !ok {
			continue
		}
		results = append(results, Result{Package: pkg, Rank: rank})
	}

	sort.SliceStable(results, func(i, j int) bool { return less(results[i], results[j]) })
	return results
}

func rankOf(query *version.Version, pkg metadata.JDK) (matchRank, bool) {
	if query == nil {
		return rankFuzzy, true
	}
	full, err := version.Parse(pkg.Version)
	if err != nil {
		return 0, false
	}
	full.Distribution = pkg.Distribution

	if query.IsLatest() {
		return rankExact, true
	}
	if version.Compare(*query, full) == 0 {
		return rankExact, true
	}
	if version.IsPrefixOf(*query, full) {
		return rankPrefix, true
	}
	return 0, false
}

func less(a, b Result) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	va, errA := version.Parse(a.Package.Version)
	vb, errB := version.Parse(b.Package.Version)
	if errA == nil && errB == nil {
		if cmp := version.Compare(va, vb); cmp != 0 {
			return cmp > 0 // newer first
		}
	}
	if a.Package.TermOfSupport != b.Package.TermOfSupport {
		return a.Package.TermOfSupport == metadata.TermLTS
	}
	if a.Package.ReleaseStatus != b.Package.ReleaseStatus {
		return a.Package.ReleaseStatus == metadata.StatusGA
	}
	return false
}

// AutoSelect picks the single best match by rank. Ambiguity (more than one
// rank-equal top candidate across distributions) is reported as an error.
func AutoSelect(results []Result, expression string) (metadata.JDK, error) {
	if len(results) == 0 {
		return metadata.JDK{}, &kopierr.NoMatchingVersion{Expression: expression}
	}
	top := results[0]
	var tied []string
	for _, r := range results {
		if r.Rank != top.Rank {
			break
		}
		va, _ := version.Parse(r.Package.Version)
		vt, _ := version.Parse(top.Package.Version)
		if version.Compare(va, vt) != 0 {
			break
		}
		tied = append(tied, r.Package.Distribution+"@"+r.Package.Version)
	}
	if len(tied) > 1 {
		return metadata.JDK{}, &kopierr.AmbiguousVersion{Expression: expression, Candidates: tied}
	}
	return top.Package, nil
}
