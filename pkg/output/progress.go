package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress renders a terminal progress bar during long passes. A nil
// Progress is valid and does nothing, so callers never branch on
// whether progress display is enabled.
type Progress struct {
	bar *pb.ProgressBar
}

// NewItemProgress creates a bar counting discrete items.
func NewItemProgress(w io.Writer, total int) *Progress {
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &Progress{bar: bar}
}

// NewByteProgress creates a bar counting transferred bytes.
func NewByteProgress(w io.Writer, total int64) *Progress {
	bar := pb.New64(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(w)
	bar.Start()
	return &Progress{bar: bar}
}

// Set moves the bar to an absolute position.
func (p *Progress) Set(current int64) {
	if p == nil {
		return
	}
	p.bar.SetCurrent(current)
}

// Increment advances the bar by one item.
func (p *Progress) Increment() {
	if p == nil {
		return
	}
	p.bar.Increment()
}

// Add advances the bar by n units.
func (p *Progress) Add(n int64) {
	if p == nil {
		return
	}
	p.bar.Add64(n)
}

// WrapReader advances the bar as the returned reader is consumed.
func (p *Progress) WrapReader(r io.Reader) io.Reader {
	if p == nil {
		return r
	}
	return p.bar.NewProxyReader(r)
}

// Finish stops rendering. Safe to call more than once.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
