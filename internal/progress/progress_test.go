package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopSatisfiesReporter(t *testing.T) {
	var r Reporter = Noop{}
	r.Start(100)
	r.Update(10)
	r.SetMessage("working")
	r.Error(errors.New("boom"))
	r.Complete()
	r.Println("line")
	child := r.CreateChild("sub")
	assert.IsType(t, Noop{}, child)
}

func TestNoopSuspendRunsCallback(t *testing.T) {
	ran := false
	Noop{}.Suspend(func() { ran = true })
	assert.True(t, ran)
}
