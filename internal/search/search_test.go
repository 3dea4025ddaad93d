package search

import (
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []metadata.JDK {
	return []metadata.JDK{
		{Distribution: "temurin", Version: "21.0.1", PackageKind: metadata.KindJDK, TermOfSupport: metadata.TermLTS, ReleaseStatus: metadata.StatusGA, DownloadURL: "https://x/1"},
		{Distribution: "temurin", Version: "21.0.5", PackageKind: metadata.KindJDK, TermOfSupport: metadata.TermLTS, ReleaseStatus: metadata.StatusGA, DownloadURL: "https://x/2"},
		{Distribution: "corretto", Version: "21.0.5", PackageKind: metadata.KindJDK, TermOfSupport: metadata.TermLTS, ReleaseStatus: metadata.StatusGA, DownloadURL: "https://x/3"},
		{Distribution: "temurin", Version: "22.0.0", PackageKind: metadata.KindJDK, TermOfSupport: metadata.TermSTS, ReleaseStatus: metadata.StatusGA, DownloadURL: "https://x/4"},
	}
}

func TestParseBareDistribution(t *testing.T) {
	q, err := Parse("temurin")
	require.NoError(t, err)
	assert.Equal(t, "temurin", q.Distribution)
	assert.Nil(t, q.VersionQuery)
}

func TestParseDistributionAtVersion(t *testing.T) {
	q, err := Parse("temurin@21")
	require.NoError(t, err)
	assert.Equal(t, "temurin", q.Distribution)
	require.NotNil(t, q.VersionQuery)
}

func TestRunPrefixMatchRanksNewerFirst(t *testing.T) {
	q, err := Parse("temurin@21")
	require.NoError(t, err)
	results := Run(sampleEntries(), q)
	require.Len(t, results, 2)
	assert.Equal(t, "21.0.5", results[0].Package.Version)
	assert.Equal(t, "21.0.1", results[1].Package.Version)
}

func TestRunLTSOnlyFilter(t *testing.T) {
	q, err := Parse("temurin")
	require.NoError(t, err)
	q.LTSOnly = true
	results := Run(sampleEntries(), q)
	for _, r := range results {
		assert.Equal(t, metadata.TermLTS, r.Package.TermOfSupport)
	}
}

func TestAutoSelectAmbiguity(t *testing.T) {
	q, err := Parse("21.0.5")
	require.NoError(t, err)
	results := Run(sampleEntries(), q)
	_, err = AutoSelect(results, "21.0.5")
	assert.Error(t, err)
}

func TestAutoSelectSingleMatch(t *testing.T) {
	q, err := Parse("corretto@21.0.5")
	require.NoError(t, err)
	results := Run(sampleEntries(), q)
	pick, err := AutoSelect(results, "corretto@21.0.5")
	require.NoError(t, err)
	assert.Equal(t, "corretto", pick.Distribution)
}

func TestAutoSelectNoMatch(t *testing.T) {
	q, err := Parse("zulu@99")
	require.NoError(t, err)
	results := Run(sampleEntries(), q)
	_, err = AutoSelect(results, "zulu@99")
	assert.Error(t, err)
}
