package version

import (
	"testing"

	"github.com/kopi-vm/kopi-sub003/internal/kopierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundaryCases(t *testing.T) {
	v, err := Parse("17.0.2+8-LTS")
	require.NoError(t, err)
	assert.Equal(t, []uint64{17, 0, 2}, v.Components)
	assert.Equal(t, "8-LTS", v.Build)
	assert.Empty(t, v.PreRelease)

	v, err = Parse("temurin@21+fx")
	require.NoError(t, err)
	assert.Equal(t, "temurin", v.Distribution)
	assert.Equal(t, []uint64{21}, v.Components)
	assert.True(t, v.JavaFX)
}

func TestParseInvalid(t *testing.T) {
	cases := []string{"", "@21", "21@temurin@21", "21.", "21..0", "abc", "21-", "21+"}
	for _, c := range cases {
		_, err := Parse(c)
		assert.ErrorIsf(t, err, kopierr.ErrInvalidVersionFormat, "expected invalid format for %q", c)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	exprs := []string{
		"21", "21.0.1", "temurin@21", "liberica@21+fx",
		"17.0.2+8-LTS", "22.0.0-ea", "corretto@17.0.2",
	}
	for _, expr := range exprs {
		v, err := Parse(expr)
		require.NoError(t, err)
		v2, err := Parse(v.String())
		require.NoError(t, err)
		assert.Equal(t, v.Distribution, v2.Distribution)
		assert.Equal(t, v.Components, v2.Components)
		assert.Equal(t, v.PreRelease, v2.PreRelease)
		assert.Equal(t, v.JavaFX, v2.JavaFX)
	}
}

func TestCompareOrdering(t *testing.T) {
	v21, _ := Parse("21")
	v2101, _ := Parse("21.0.1")
	assert.True(t, Less(v21, v2101), "21 should sort before 21.0.1")

	pre, _ := Parse("22.0.0-ea")
	rel, _ := Parse("22.0.0")
	assert.True(t, Less(pre, rel), "pre-release should sort before release")
}

func TestIsPrefixOf(t *testing.T) {
	query, _ := Parse("21")
	full, _ := Parse("temurin@21.0.5")
	assert.True(t, IsPrefixOf(query, full))

	fxQuery, _ := Parse("liberica@21+fx")
	fxFull, _ := Parse("liberica@21.0.5+fx")
	nonFxFull, _ := Parse("liberica@21.0.5")
	assert.True(t, IsPrefixOf(fxQuery, fxFull))
	assert.False(t, IsPrefixOf(fxQuery, nonFxFull))

	noFxQuery, _ := Parse("liberica@21")
	assert.True(t, IsPrefixOf(noFxQuery, fxFull))
	assert.True(t, IsPrefixOf(noFxQuery, nonFxFull))
}

func TestLatestKeyword(t *testing.T) {
	v, err := Parse("latest")
	require.NoError(t, err)
	assert.True(t, v.IsLatest())

	v, err = Parse("temurin@latest")
	require.NoError(t, err)
	assert.True(t, v.IsLatest())
	assert.Equal(t, "temurin", v.Distribution)
}
