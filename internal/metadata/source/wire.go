// Package source implements the metadata source capability set and its
// composition into a fallback-ordered provider (spec.md §4.F). The wire
// model below mirrors foojay.io's JSON shape, grounded on original_source's
// src/api/models.rs.
package source

// wirePackage is one entry of a foojay.io-style /packages response.
type wirePackage struct {
	ID                   string      `json:"id"`
	ArchiveType          string      `json:"archive_type"`
	Distribution         string      `json:"distribution"`
	MajorVersion         int         `json:"major_version"`
	JavaVersion          string      `json:"java_version"`
	DistributionVersion  string      `json:"distribution_version"`
	DirectlyDownloadable bool        `json:"directly_downloadable"`
	Filename             string      `json:"filename"`
	Links                wireLinks   `json:"links"`
	Size                 int64       `json:"size"`
	OperatingSystem      string      `json:"operating_system"`
	Architecture         string      `json:"architecture"`
	LibCType             string      `json:"lib_c_type,omitempty"`
	TermOfSupport        string      `json:"term_of_support"`
	ReleaseStatus        string      `json:"release_status"`
	PackageType           string     `json:"package_type"`
	LatestBuildAvailable bool        `json:"latest_build_available"`
	JavaFXBundled        bool        `json:"javafx_bundled"`
	// Checksum and ChecksumType are set directly by the static index and
	// local-directory formats, which pre-compute them at generation time.
	// The remote foojay-style API never sets these; its checksum comes
	// back from the per-package info endpoint instead (wirePackageInfo).
	Checksum     string `json:"checksum,omitempty"`
	ChecksumType string `json:"checksum_type,omitempty"`
}

type wireLinks struct {
	PkgDownloadRedirect string `json:"pkg_download_redirect"`
	PkgInfoURI          string `json:"pkg_info_uri,omitempty"`
}

// wirePackageInfo is the response of the per-package info endpoint, carrying
// the checksum that turns a partial record into a complete one.
type wirePackageInfo struct {
	Filename          string `json:"filename"`
	DirectDownloadURI string `json:"direct_download_uri"`
	Checksum          string `json:"checksum"`
	ChecksumType      string `json:"checksum_type"`
}

// wireResponse wraps the list shape foojay.io's /packages endpoint returns.
type wireResponse struct {
	Result []wirePackage `json:"result"`
}

// wirePackageInfoResponse wraps the list shape foojay.io's per-package info
// endpoint returns (a single-element result list, same envelope as /packages).
type wirePackageInfoResponse struct {
	Result []wirePackageInfo `json:"result"`
}
