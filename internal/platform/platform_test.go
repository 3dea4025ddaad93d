package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCachesResultProcessWide(t *testing.T) {
	first, err := Detect()
	require.NoError(t, err)
	second, err := Detect()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Architecture)
	assert.NotEmpty(t, first.OS)
}

func TestExecutableExtensionMatchesRuntime(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Equal(t, ".exe", ExecutableExtension())
	} else {
		assert.Equal(t, "", ExecutableExtension())
	}
}

func TestWithExecutableExtensionAppends(t *testing.T) {
	assert.Equal(t, "java"+ExecutableExtension(), WithExecutableExtension("java"))
}

func TestIsReservedNameOnlyOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.True(t, IsReservedName("con"))
		assert.True(t, IsReservedName("COM1"))
		assert.False(t, IsReservedName("temurin"))
	} else {
		assert.False(t, IsReservedName("CON"))
	}
}

func TestAtomicRenameMovesFile(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old")
	newPath := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(oldPath, []byte("data"), 0o644))

	require.NoError(t, AtomicRename(oldPath, newPath))

	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(newPath)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestAtomicRenameOverwritesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old")
	newPath := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(oldPath, []byte("fresh"), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte("stale"), 0o644))

	require.NoError(t, AtomicRename(oldPath, newPath))

	data, err := os.ReadFile(newPath)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestSetExecutableSetsModeBitsOnPOSIX(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX mode bits on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

	require.NoError(t, SetExecutable(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestSymlinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	require.NoError(t, CreateSymlink(target, link))

	ok, err := VerifySymlink(link, target)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifySymlinkFalseForMissingLink(t *testing.T) {
	dir := t.TempDir()
	ok, err := VerifySymlink(filepath.Join(dir, "nope"), filepath.Join(dir, "target"))
	require.NoError(t, err)
	assert.False(t, ok)
}
