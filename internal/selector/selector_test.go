package selector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/kopipath"
	"github.com/kopi-vm/kopi-sub003/internal/registry"
	"github.com/kopi-vm/kopi-sub003/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, expr string) version.Version {
	t.Helper()
	v, err := version.Parse(expr)
	require.NoError(t, err)
	return v
}

func TestFindExpressionEnvWins(t *testing.T) {
	paths := kopipath.New(t.TempDir())
	t.Setenv(EnvVar, "temurin@21")

	res, ok, err := FindExpression(paths, t.TempDir())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SourceEnv, res.Source)
	assert.Equal(t, "temurin@21", res.Expression)
}

func TestFindExpressionProjectFileBeatsGlobal(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	require.NoError(t, os.WriteFile(paths.GlobalVersionFile(), []byte("17"), 0o644))

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, ".kopi-version"), []byte("21.0.1"), 0o644))

	res, ok, err := FindExpression(paths, project)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SourceProjectFile, res.Source)
	assert.Equal(t, "21.0.1", res.Expression)
}

func TestFindExpressionWalksUpToGlobal(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	require.NoError(t, os.WriteFile(paths.GlobalVersionFile(), []byte("17"), 0o644))

	nested := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	res, ok, err := FindExpression(paths, nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SourceGlobalFile, res.Source)
	assert.Equal(t, "17", res.Expression)
}

func TestResolveAmbiguous(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	t.Setenv(EnvVar, "21")

	installs := []registry.Installation{
		{Distribution: "temurin", Version: mustParse(t, "21.0.1")},
		{Distribution: "corretto", Version: mustParse(t, "21.0.5")},
	}

	_, _, err := Resolve(paths, t.TempDir(), installs)
	require.Error(t, err)
}

func TestResolveLatestPicksGreatest(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	t.Setenv(EnvVar, "temurin@latest")

	installs := []registry.Installation{
		{Distribution: "temurin", Version: mustParse(t, "21.0.1")},
		{Distribution: "temurin", Version: mustParse(t, "21.0.5")},
	}

	inst, _, err := Resolve(paths, t.TempDir(), installs)
	require.NoError(t, err)
	assert.Equal(t, "21.0.5", inst.Version.String())
}

func TestResolveNoMatch(t *testing.T) {
	home := t.TempDir()
	paths := kopipath.New(home)
	t.Setenv(EnvVar, "zulu@99")

	_, _, err := Resolve(paths, t.TempDir(), nil)
	require.Error(t, err)
}
