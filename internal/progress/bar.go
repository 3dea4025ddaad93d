package progress

import (
	"fmt"

	"github.com/cheggaaa/pb"
)

// Bar is the cheggaaa/pb-backed Reporter the CLI layer wires into the core
// for long-running operations (download, extract). Core packages never
// import this file directly; they depend on the Reporter interface.
type Bar struct {
	bar *pb.ProgressBar
}

// NewBar constructs a Bar tracking a byte total.
func NewBar(total int64) *Bar {
	b := pb.New64(total)
	b.SetUnits(pb.U_BYTES)
	b.ShowTimeLeft = true
	return &Bar{bar: b}
}

func (b *Bar) Start(total int64) {
	b.bar.SetTotal64(total)
	b.bar.Start()
}

func (b *Bar) Update(delta int64) { b.bar.Add64(delta) }

func (b *Bar) SetMessage(msg string) { b.bar.Prefix(msg) }

func (b *Bar) Complete() { b.bar.Finish() }

func (b *Bar) Error(err error) {
	b.bar.Prefix(fmt.Sprintf("error: %v", err))
	b.bar.Finish()
}

func (b *Bar) CreateChild(label string) Reporter {
	child := NewBar(0)
	child.SetMessage(label)
	return child
}

func (b *Bar) Println(line string) {
	fmt.Println(line)
}

func (b *Bar) Suspend(fn func()) {
	fn()
}
