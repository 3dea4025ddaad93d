package metadata

import (
	"fmt"
	"strings"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
)

// PackageKind distinguishes a full JDK from a JRE-only package.
type PackageKind string

const (
	KindJDK PackageKind = "jdk"
	KindJRE PackageKind = "jre"
)

// Coordinate uniquely identifies an installable package slot, per spec.md
// §3: (distribution, major version, kind, optional arch, optional libc,
// optional javafx). Two coordinates are equal iff every field is equal.
type Coordinate struct {
	Distribution string
	Major        uint64
	Kind         PackageKind
	Architecture string // "" if unspecified
	Libc         string // "" if unspecified
	JavaFX       bool
}

// Slug returns the coordinate's deterministic, filesystem-safe identifier:
// <dist>-<major>-<kind>[-<arch>][-<libc>][-javafx], lowercased with
// non-alphanumeric runs collapsed to '-'.
func (c Coordinate) Slug() string {
	parts := []string{c.Distribution, fmt.Sprint(c.Major), string(c.Kind)}
	if c.Architecture != "" {
		parts = append(parts, c.Architecture)
	}
	if c.Libc != "" {
		parts = append(parts, c.Libc)
	}
	if c.JavaFX {
		parts = append(parts, "javafx")
	}
	return kopipath.Sanitize(strings.Join(parts, "-"))
}

// InstallDirName returns the directory name an installed JDK uses:
// <distribution>-<version>[-fx], matching spec.md §3's "Installed JDK"
// record, which is coarser than Slug (no kind/arch/libc, since an
// installations root only ever holds one OS/arch at a time).
func InstallDirName(distribution, version string, javafx bool) string {
	name := distribution + "-" + version
	if javafx {
		name += "-fx"
	}
	return name
}
