package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarSatisfiesReporter(t *testing.T) {
	var r Reporter = NewBar(1024)
	r.Start(1024)
	r.SetMessage("downloading")
	r.Update(512)
	r.Error(errors.New("boom"))
	r.Complete()

	child := r.CreateChild("child")
	assert.Implements(t, (*Reporter)(nil), child)
}
