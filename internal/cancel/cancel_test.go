package cancel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTokenStartsUncancelled(t *testing.T) {
	tok := New()
	assert.False(t, tok.IsCancelled())
}

func TestCancelMarksToken(t *testing.T) {
	tok := New()
	tok.Cancel()
	assert.True(t, tok.IsCancelled())
}

func TestTokensAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.Cancel()
	assert.True(t, a.IsCancelled())
	assert.False(t, b.IsCancelled())
}

func TestGlobalReturnsSameTokenEachCall(t *testing.T) {
	first := Global()
	second := Global()
	first.Cancel()
	assert.True(t, second.IsCancelled(), "Global() must return the same process-wide token every call")
}
