package install

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/cancel"
	"github.com/kopi-vm/kopi-sub003/internal/download"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/locking"
	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/kopi-vm/kopi-sub003/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixtureArchive(t *testing.T) ([]byte, string) {
	t.Helper()
	buf := &bytesBuffer{}
	gz := gzip.NewWriter(buf)
	tw := tar.NewWriter(gz)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "jdk-21.0.5/bin/", Typeflag: tar.TypeDir, Mode: 0o755}))
	content := "#!/bin/sh\necho fake java\n"
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "jdk-21.0.5/bin/java", Typeflag: tar.TypeReg, Mode: 0o755, Size: int64(len(content)),
	}))
	_, err := tw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	data := buf.Bytes()
	sum := fmt.Sprintf("%x", sha256.Sum256(data))
	return data, sum
}

type bytesBuffer struct {
	data []byte
}

func (b *bytesBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bytesBuffer) Bytes() []byte { return b.data }

func TestInstallPipelineSuccess(t *testing.T) {
	archiveBytes, sum := buildFixtureArchive(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archiveBytes)
	}))
	defer srv.Close()

	home := t.TempDir()
	paths := kopipath.New(home)
	ctrl := locking.New(paths, nil)
	orch := &Orchestrator{
		Paths:      paths,
		Locks:      ctrl,
		Downloader: &download.Client{},
	}

	pkg := metadata.JDK{
		Distribution: "temurin",
		Version:      "21.0.5",
		PackageKind:  metadata.KindJDK,
		ArchiveKind:  metadata.ArchiveTarGz,
		DownloadURL:  srv.URL,
		Checksum:     sum,
	}

	finalDir, err := orch.Install(context.Background(), pkg, cancel.New(), progress.Noop{}, Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(finalDir, "bin", "java"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fake java")

	meta, err := ReadInstallMeta(paths.InstallationMetaPath("temurin-21.0.5"))
	require.NoError(t, err)
	assert.Equal(t, "temurin", meta.Distribution)
}

func TestInstallAlreadyInstalled(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	require.NoError(t, os.MkdirAll(paths.InstallationDir("temurin-21.0.5"), 0o755))

	orch := &Orchestrator{Paths: paths, Locks: locking.New(paths, nil), Downloader: &download.Client{}}
	pkg := metadata.JDK{Distribution: "temurin", Version: "21.0.5", DownloadURL: "https://x", Checksum: "abc"}

	_, err := orch.Install(context.Background(), pkg, cancel.New(), nil, Options{})
	require.Error(t, err)
}

func TestUninstallRemovesDirectory(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	dirName := "temurin-21.0.5"
	require.NoError(t, os.MkdirAll(paths.InstallationDir(dirName), 0o755))
	require.NoError(t, os.WriteFile(paths.InstallationMetaPath(dirName), []byte("{}"), 0o644))

	orch := &Orchestrator{Paths: paths, Locks: locking.New(paths, nil), Downloader: &download.Client{}}
	coord := metadata.JDK{Distribution: "temurin", Version: "21.0.5"}.Coordinate()

	require.NoError(t, orch.Uninstall(coord, dirName, cancel.New()))
	_, err := os.Stat(paths.InstallationDir(dirName))
	assert.True(t, os.IsNotExist(err))
}
