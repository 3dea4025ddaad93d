package source

import (
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
)

func mapPackage(p wirePackage, info *wirePackageInfo) metadata.JDK {
	kind := metadata.KindJDK
	if p.PackageType == "jre" {
		kind = metadata.KindJRE
	}
	archiveKind := metadata.ArchiveTarGz
	if p.ArchiveType == "zip" {
		archiveKind = metadata.ArchiveZip
	}
	term := metadata.TermOfSupport(p.TermOfSupport)
	status := metadata.ReleaseStatus(p.ReleaseStatus)

	j := metadata.JDK{
		ID:                   p.ID,
		Distribution:         p.Distribution,
		Version:              p.JavaVersion,
		DistributionVersion:  p.DistributionVersion,
		Architecture:         p.Architecture,
		OS:                   p.OperatingSystem,
		PackageKind:          kind,
		ArchiveKind:          archiveKind,
		Size:                 p.Size,
		Libc:                 p.LibCType,
		JavaFX:               p.JavaFXBundled,
		TermOfSupport:        term,
		ReleaseStatus:        status,
		LatestBuildAvailable: p.LatestBuildAvailable,
	}
	if info != nil {
		// Remote API: the checksum lives behind the per-package info
		// endpoint, fetched separately and passed in here.
		j.DownloadURL = info.DirectDownloadURI
		j.Checksum = info.Checksum
		j.ChecksumKind = metadata.ChecksumKind(info.ChecksumType)
	} else {
		// Static index/local-directory sources: the checksum is already
		// carried inline in the package entry, no second fetch needed.
		if p.Links.PkgDownloadRedirect != "" && p.DirectlyDownloadable {
			j.DownloadURL = p.Links.PkgDownloadRedirect
		}
		if p.Checksum != "" {
			j.Checksum = p.Checksum
			j.ChecksumKind = metadata.ChecksumKind(p.ChecksumType)
		}
	}
	return j
}
