package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("install_lock_timeout: 90s\nauto_install: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.InstallLockTimeout)
	assert.True(t, cfg.AutoInstall)
	assert.Equal(t, Defaults().CacheLockTimeout, cfg.CacheLockTimeout)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_install: false\n"), 0o644))
	t.Setenv("KOPI_AUTO_INSTALL", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.AutoInstall)
}
