package metadata

// ArchiveKind enumerates the archive formats internal/archive understands.
type ArchiveKind string

const (
	ArchiveTarGz ArchiveKind = "tar.gz"
	ArchiveZip   ArchiveKind = "zip"
)

// TermOfSupport mirrors foojay.io's term_of_support field.
type TermOfSupport string

const (
	TermLTS TermOfSupport = "lts"
	TermSTS TermOfSupport = "sts"
	TermMTS TermOfSupport = "mts"
)

// ReleaseStatus mirrors foojay.io's release status field.
type ReleaseStatus string

const (
	StatusGA ReleaseStatus = "ga"
	StatusEA ReleaseStatus = "ea"
)

// ChecksumKind names the hash algorithm a JDK record's checksum uses.
type ChecksumKind string

const (
	ChecksumSHA256 ChecksumKind = "sha256"
	ChecksumSHA1   ChecksumKind = "sha1"
	ChecksumMD5    ChecksumKind = "md5"
)

// JDK is the fully specified metadata record described in spec.md §3. A
// record is either complete (DownloadURL and Checksum set, so Install can
// use it directly) or partial (summary only, usable for listing/search but
// rejected by the installer until a complete record is fetched).
type JDK struct {
	ID                   string        `json:"id"`
	Distribution         string        `json:"distribution"`
	Version              string        `json:"version"`
	DistributionVersion  string        `json:"distribution_version"`
	Architecture         string        `json:"architecture"`
	OS                   string        `json:"os"`
	PackageKind          PackageKind   `json:"package_kind"`
	ArchiveKind          ArchiveKind   `json:"archive_kind"`
	DownloadURL          string        `json:"download_url,omitempty"`
	Checksum             string        `json:"checksum,omitempty"`
	ChecksumKind         ChecksumKind  `json:"checksum_kind,omitempty"`
	Size                 int64         `json:"size"`
	Libc                 string        `json:"libc,omitempty"`
	JavaFX               bool          `json:"javafx"`
	TermOfSupport        TermOfSupport `json:"term_of_support"`
	ReleaseStatus        ReleaseStatus `json:"release_status"`
	LatestBuildAvailable bool          `json:"latest_build_available"`
}

// Complete reports whether the record carries enough information for the
// installer to act on directly: a download URL and a checksum.
func (j JDK) Complete() bool {
	return j.DownloadURL != "" && j.Checksum != ""
}

// Coordinate derives this record's package coordinate.
func (j JDK) Coordinate() Coordinate {
	return Coordinate{
		Distribution: j.Distribution,
		Major:        majorOf(j.Version),
		Kind:         j.PackageKind,
		Architecture: j.Architecture,
		Libc:         j.Libc,
		JavaFX:       j.JavaFX,
	}
}

func majorOf(v string) uint64 {
	var major uint64
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		major = major*10 + uint64(r-'0')
	}
	return major
}
