package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/platform"
)

// DefaultTTL is the staleness threshold a fresh cache read uses when the
// caller does not override it (spec.md §6): 30 days.
const DefaultTTL = 30 * 24 * time.Hour

// CacheFormatVersion is the cache document's on-disk schema version
// (spec.md §6's top-level "version" field). Bump when the shape changes.
const CacheFormatVersion = 1

// DistributionEntry is one distribution's slice of the cache document: its
// display name, the records foojay.io (or another source) returned, and when
// they were fetched.
type DistributionEntry struct {
	DisplayName string    `json:"display_name"`
	FetchedAt   time.Time `json:"fetched_at"`
	Packages    []JDK     `json:"packages"`
}

// Document is the cache file's on-disk shape: a schema version, a
// generation timestamp, and a map of distributions keyed by id, per
// spec.md §3/§6.
type Document struct {
	Version       int                          `json:"version"`
	Generated     time.Time                    `json:"generated"`
	Distributions map[string]DistributionEntry `json:"distributions"`
}

// Cache wraps read/write access to the on-disk metadata cache file.
type Cache struct {
	paths *kopipath.Registry
}

// NewCache builds a Cache rooted at the given path registry.
func NewCache(paths *kopipath.Registry) *Cache {
	return &Cache{paths: paths}
}

// Load reads the cache document, returning an empty (not nil) Document if
// the cache file does not yet exist.
func (c *Cache) Load() (*Document, error) {
	data, err := os.ReadFile(c.paths.CacheFile())
	if os.IsNotExist(err) {
		return &Document{Version: CacheFormatVersion, Distributions: map[string]DistributionEntry{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing cache file: %w", err)
	}
	if doc.Distributions == nil {
		doc.Distributions = map[string]DistributionEntry{}
	}
	return &doc, nil
}

// Save writes doc to the cache file via a write-temp-then-rename sequence,
// so a reader never observes a partially written document.
func (c *Cache) Save(doc *Document) error {
	stagingDir := c.paths.CacheStagingDir()
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.paths.CacheFile()), 0o755); err != nil {
		return err
	}

	doc.Version = CacheFormatVersion
	doc.Generated = time.Now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := filepath.Join(stagingDir, "metadata-"+uuid.NewString()+".json")
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	return platform.AtomicRename(tmpPath, c.paths.CacheFile())
}

// Put replaces a distribution's entry with freshly fetched packages stamped
// with fetchedAt, then persists the document.
func (c *Cache) Put(distribution string, packages []JDK, fetchedAt time.Time) error {
	doc, err := c.Load()
	if err != nil {
		return err
	}
	doc.Distributions[distribution] = DistributionEntry{
		DisplayName: ResolveDistribution(distribution).DisplayName,
		FetchedAt:   fetchedAt,
		Packages:    packages,
	}
	return c.Save(doc)
}

// Get returns the cached entry for distribution and whether it was present.
func (c *Cache) Get(distribution string) (DistributionEntry, bool, error) {
	doc, err := c.Load()
	if err != nil {
		return DistributionEntry{}, false, err
	}
	entry, ok := doc.Distributions[distribution]
	return entry, ok, nil
}

// Stale reports whether entry is older than ttl as measured from now.
func (e DistributionEntry) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) > ttl
}
