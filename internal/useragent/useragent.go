// Package useragent centralizes the User-Agent strings sent by every HTTP
// client in the module, so the wire contract in spec.md §6
// ("kopi/<feature>/<version>") has exactly one place to change.
package useragent

import "fmt"

// Version is the module's release version, overridable at link time with
// -ldflags "-X github.com/kopi-vm/kopi-sub003/internal/useragent.Version=...".
var Version = "0.1.0"

// ForFeature returns the User-Agent string for a named HTTP client, e.g.
// ForFeature("api") -> "kopi/api/0.1.0".
func ForFeature(feature string) string {
	return fmt.Sprintf("kopi/%s/%s", feature, Version)
}

// API is the User-Agent used by the remote metadata API source.
func API() string { return ForFeature("api") }

// Metadata is the User-Agent used by the HTTP index metadata source.
func Metadata() string { return ForFeature("metadata") }

// Download is the User-Agent used by the archive download client.
func Download() string { return ForFeature("download") }

// Doctor is the User-Agent used by diagnostic network checks.
func Doctor() string { return ForFeature("doctor") }
