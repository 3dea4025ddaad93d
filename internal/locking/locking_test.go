package locking

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopePaths(t *testing.T) {
	paths := kopipath.New("/tmp/kopi")

	install := InstallationScope{Coordinate: metadata.Coordinate{
		Distribution: "Temurin", Major: 21, Kind: metadata.KindJDK, Architecture: "x64",
	}}
	assert.Equal(t, filepath.Join("/tmp/kopi", "locks", "install", "temurin", "temurin-21-jdk-x64.lock"), install.Path(paths))

	assert.Equal(t, filepath.Join("/tmp/kopi", "locks", "cache.lock"), CacheWriterScope{}.Path(paths))
	assert.Equal(t, filepath.Join("/tmp/kopi", "locks", "config.lock"), GlobalConfigScope{}.Path(paths))

	assert.Contains(t, install.Label(), "installation")
	assert.Equal(t, "cache writer", CacheWriterScope{}.Label())
	assert.Equal(t, "global configuration", GlobalConfigScope{}.Label())
}

func TestControllerAcquireAndRelease(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	ctrl := New(paths, nil)

	h, err := ctrl.Acquire(CacheWriterScope{}, cancel.New(), Options{Timeout: time.Second})
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NoError(t, h.Release())
}

func TestControllerTimesOutOnContention(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	ctrl := New(paths, nil)

	first, err := ctrl.Acquire(CacheWriterScope{}, cancel.New(), Options{Timeout: time.Second})
	require.NoError(t, err)
	defer first.Release()

	_, err = ctrl.Acquire(CacheWriterScope{}, cancel.New(), Options{Timeout: 50 * time.Millisecond})
	require.Error(t, err)
}

func TestControllerHonorsCancellation(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	ctrl := New(paths, nil)

	first, err := ctrl.Acquire(CacheWriterScope{}, cancel.New(), Options{Timeout: time.Second})
	require.NoError(t, err)
	defer first.Release()

	token := cancel.New()
	token.Cancel()
	_, err = ctrl.Acquire(CacheWriterScope{}, token, Options{Timeout: 5 * time.Second})
	require.Error(t, err)
}

func TestForceFallbackUsesMarkerFiles(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	ctrl := New(paths, nil)

	h, err := ctrl.Acquire(CacheWriterScope{}, cancel.New(), Options{ForceFallback: true, Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "fallback", h.Backend())

	_, statErr := os.Stat(CacheWriterScope{}.Path(paths) + ".marker")
	assert.NoError(t, statErr)
	require.NoError(t, h.Release())
}

func TestHygieneRemovesStaleMarkers(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	locksDir := filepath.Join(paths.LocksRoot(), "install", "temurin")
	require.NoError(t, os.MkdirAll(locksDir, 0o755))

	markerPath := filepath.Join(locksDir, "temurin-21-jdk.lock.marker")
	require.NoError(t, os.WriteFile(markerPath, nil, 0o644))
	old := time.Now().Add(-2 * HygieneThreshold)
	require.NoError(t, os.Chtimes(markerPath, old, old))

	report, err := RunHygiene(paths, HygieneThreshold)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MarkersRemoved)

	_, statErr := os.Stat(markerPath)
	assert.True(t, os.IsNotExist(statErr))
}
