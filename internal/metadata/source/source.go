package source

import (
	"context"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/metadata"
)

// Query describes a metadata fetch request, converted into URL parameters
// by the remote API source; the HTTP index and local directory sources read
// at most its Distribution field.
type Query struct {
	Distribution         string
	Version              string
	Architecture         string
	PackageKind          metadata.PackageKind
	OS                   string
	Libc                 string
	ArchiveKinds         []metadata.ArchiveKind
	Latest               bool
	DirectlyDownloadable bool
	JavaFXBundled        bool
}

// Source is the capability set every metadata source implements (spec.md
// §4.F). Sources are concrete variants, not user-loadable plugins.
type Source interface {
	Name() string
	IsAvailable(ctx context.Context) bool
	FetchAll(ctx context.Context, q Query) ([]metadata.JDK, error)
	FetchDistribution(ctx context.Context, distribution string, q Query) ([]metadata.JDK, error)
	LastUpdated(ctx context.Context) (time.Time, bool)
}
