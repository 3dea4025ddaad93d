package metadata

import (
	"testing"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDistributionSynonyms(t *testing.T) {
	d := ResolveDistribution("AdoptOpenJDK")
	assert.Equal(t, "temurin", d.ID)

	other := ResolveDistribution("NotARealVendor")
	assert.Equal(t, "notarealvendor", other.ID)
	assert.Equal(t, "notarealvendor", other.DisplayName)
}

func TestCoordinateSlug(t *testing.T) {
	c := Coordinate{Distribution: "Temurin", Major: 21, Kind: KindJDK, JavaFX: true}
	assert.Equal(t, "temurin-21-jdk-javafx", c.Slug())

	bare := Coordinate{Distribution: "corretto", Major: 17, Kind: KindJRE}
	assert.Equal(t, "corretto-17-jre", bare.Slug())
}

func TestInstallDirName(t *testing.T) {
	assert.Equal(t, "temurin-21.0.5", InstallDirName("temurin", "21.0.5", false))
	assert.Equal(t, "liberica-21.0.5-fx", InstallDirName("liberica", "21.0.5", true))
}

func TestJDKCompleteInvariant(t *testing.T) {
	partial := JDK{Distribution: "temurin", Version: "21.0.5"}
	assert.False(t, partial.Complete())

	complete := partial
	complete.DownloadURL = "https://example.invalid/jdk.tar.gz"
	complete.Checksum = "deadbeef"
	assert.True(t, complete.Complete())
}

func TestJDKCoordinateDerivesMajor(t *testing.T) {
	j := JDK{Distribution: "temurin", Version: "21.0.5", PackageKind: KindJDK}
	assert.Equal(t, uint64(21), j.Coordinate().Major)
}

func TestCacheRoundTrip(t *testing.T) {
	reg := kopipath.New(t.TempDir())
	cache := NewCache(reg)

	doc, err := cache.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Distributions)

	fetchedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	packages := []JDK{
		{ID: "temurin-21", Distribution: "temurin", Version: "21.0.5", PackageKind: KindJDK},
	}
	require.NoError(t, cache.Put("temurin", packages, fetchedAt))

	entry, ok, err := cache.Get("temurin")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, packages, entry.Packages)
	assert.True(t, entry.FetchedAt.Equal(fetchedAt))
	assert.Equal(t, "Eclipse Temurin", entry.DisplayName)

	reloaded, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, CacheFormatVersion, reloaded.Version)
	assert.False(t, reloaded.Generated.IsZero())
}

func TestCacheStaleness(t *testing.T) {
	entry := DistributionEntry{FetchedAt: time.Now().Add(-31 * 24 * time.Hour)}
	assert.True(t, entry.Stale(time.Now(), DefaultTTL))

	fresh := DistributionEntry{FetchedAt: time.Now()}
	assert.False(t, fresh.Stale(time.Now(), DefaultTTL))
}
