// Package locking serializes destructive operations across processes,
// including across users on shared hosts, without requiring a daemon
// (spec.md §4.D). Lock scopes are acquired in a fixed canonical order when
// held simultaneously: GlobalConfig < CacheWriter < Installation{*}.
package locking

import (
	"fmt"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
)

// Kind indicates whether a lock allows concurrent readers or enforces
// exclusivity. Every scope in this module uses Exclusive; Shared is kept for
// forward compatibility with a future read lock on the cache.
type Kind int

const (
	Exclusive Kind = iota
	Shared
)

// Scope describes what is being protected and produces its own on-disk lock
// path and default timeout.
type Scope interface {
	Path(paths *kopipath.Registry) string
	Kind() Kind
	Label() string
	DefaultTimeout() time.Duration
}

// InstallationScope guards a single package coordinate's install/uninstall.
type InstallationScope struct {
	Coordinate metadata.Coordinate
}

func (s InstallationScope) Path(paths *kopipath.Registry) string {
	return paths.InstallLockPath(s.Coordinate.Distribution, s.Coordinate.Slug())
}
func (s InstallationScope) Kind() Kind                    { return Exclusive }
func (s InstallationScope) Label() string                 { return fmt.Sprintf("installation %s", s.Coordinate.Slug()) }
func (s InstallationScope) DefaultTimeout() time.Duration { return 600 * time.Second }

// CacheWriterScope guards writes to the metadata cache.
type CacheWriterScope struct{}

func (CacheWriterScope) Path(paths *kopipath.Registry) string { return paths.CacheLockPath() }
func (CacheWriterScope) Kind() Kind                            { return Exclusive }
func (CacheWriterScope) Label() string                         { return "cache writer" }
func (CacheWriterScope) DefaultTimeout() time.Duration         { return 30 * time.Second }

// GlobalConfigScope guards writes to the global configuration file.
type GlobalConfigScope struct{}

func (GlobalConfigScope) Path(paths *kopipath.Registry) string { return paths.ConfigLockPath() }
func (GlobalConfigScope) Kind() Kind                            { return Exclusive }
func (GlobalConfigScope) Label() string                         { return "global configuration" }
func (GlobalConfigScope) DefaultTimeout() time.Duration         { return 10 * time.Second }
