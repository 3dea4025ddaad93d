package shim

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/install"
	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolNameStripsExeSuffix(t *testing.T) {
	assert.Equal(t, "java", ToolName("/usr/local/bin/java"))
	assert.Equal(t, "javac", ToolName(`C:\kopi\shims\javac.exe`))
}

func TestResolveUsesEnvOverride(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	dirName := "temurin-21.0.5"
	instDir := paths.InstallationDir(dirName)
	require.NoError(t, os.MkdirAll(filepath.Join(instDir, "bin"), 0o755))

	t.Setenv("KOPI_VERSION", "temurin@21")

	binPath, inst, err := Resolve(paths, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "temurin", inst.Distribution)
	assert.Equal(t, instDir, binPath)
}

func TestToolBinaryPathUsesMetaSuffix(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	dirName := "temurin-21.0.5"
	instDir := paths.InstallationDir(dirName)
	require.NoError(t, os.MkdirAll(filepath.Join(instDir, "Contents", "Home", "bin"), 0o755))

	meta := install.InstallMeta{Distribution: "temurin", Version: "21.0.5", JavaHomeSuffix: "Contents/Home"}
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(paths.InstallationMetaPath(dirName), data, 0o644))

	inst := registry.Installation{Distribution: "temurin", Dir: instDir}
	binPath := ToolBinaryPath(paths, inst, "java")
	assert.Equal(t, filepath.Join(instDir, "Contents", "Home", "bin", "java"), binPath)
}

func TestToolBinaryPathFallsBackWithoutMeta(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	instDir := paths.InstallationDir("corretto-17.0.2")

	inst := registry.Installation{Distribution: "corretto", Dir: instDir}
	binPath := ToolBinaryPath(paths, inst, "java")
	assert.Equal(t, filepath.Join(instDir, "bin", "java"), binPath)
}
