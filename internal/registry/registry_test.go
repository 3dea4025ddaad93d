package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeInstallation(t *testing.T, root, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, name, "bin"), 0o755))
}

func TestScanSkipsMalformedAndStaging(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	root := paths.InstallationsRoot()

	makeInstallation(t, root, "temurin-21.0.5")
	makeInstallation(t, root, "liberica-21.0.5-fx")
	makeInstallation(t, root, "not-a-valid-name-at-all")
	makeInstallation(t, root, ".tmp")

	installs, err := Scan(paths, nil)
	require.NoError(t, err)
	require.Len(t, installs, 2)

	names := map[string]bool{}
	for _, i := range installs {
		names[i.Distribution] = true
	}
	assert.True(t, names["temurin"])
	assert.True(t, names["liberica"])
}

func TestResolvePrefixAndJavaFX(t *testing.T) {
	installs := []Installation{
		{Distribution: "temurin", Version: mustParse(t, "21.0.5"), JavaFX: false},
		{Distribution: "liberica", Version: mustParse(t, "21.0.5"), JavaFX: true},
	}

	q := mustParse(t, "21")
	matches := Resolve(installs, "", q)
	assert.Len(t, matches, 2)

	fxQuery := mustParse(t, "21+fx")
	fxMatches := Resolve(installs, "", fxQuery)
	require.Len(t, fxMatches, 1)
	assert.Equal(t, "liberica", fxMatches[0].Distribution)
}

func mustParse(t *testing.T, expr string) version.Version {
	t.Helper()
	v, err := version.Parse(expr)
	require.NoError(t, err)
	return v
}
