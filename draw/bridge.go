package draw

import (
	"github.com/jetsetilly/nora32/logger"
)

// Renderer is implemented by anything that can present the draw output of the
// emulation.
//
// Both functions are called synchronously on the emulation goroutine. The
// Batch passed to DrawTriangles() is only valid for the duration of the call.
type Renderer interface {
	DrawTriangles(Batch)
	DisplayFramebuffer()
}

// Bridge sits between the emulation and a Renderer. Invalid batches are
// dropped rather than passed on and only one display event per frame reaches
// the Renderer.
type Bridge struct {
	r Renderer

	// the display event has been forwarded for the current frame
	displayed bool

	// number of batches forwarded in the current frame
	batches int

	frames  uint64
	dropped uint64
}

// NewBridge is the preferred method of initialisation for the Bridge type.
func NewBridge(r Renderer) *Bridge {
	return &Bridge{r: r}
}

// BeginFrame must be called before the emulation starts a new frame.
func (b *Bridge) BeginFrame() {
	b.displayed = false
	b.batches = 0
}

// DrawTriangles validates the batch and pushes it to the Renderer.
func (b *Bridge) DrawTriangles(batch Batch) {
	if err := batch.Validate(); err != nil {
		b.dropped++
		logger.Log(logger.Allow, "draw", err)
		return
	}
	if batch.Count == 0 {
		return
	}
	b.batches++
	b.r.DrawTriangles(batch)
}

// DisplayFramebuffer pushes the display event to the Renderer. A second event
// in the same frame is ignored.
func (b *Bridge) DisplayFramebuffer() {
	if b.displayed {
		logger.Log(logger.Allow, "draw", "extra display event in frame ignored")
		return
	}
	b.displayed = true
	b.frames++
	b.r.DisplayFramebuffer()
}

// Frames returns the number of display events forwarded to the Renderer.
func (b *Bridge) Frames() uint64 {
	return b.frames
}

// Dropped returns the number of batches that failed validation.
func (b *Bridge) Dropped() uint64 {
	return b.dropped
}

// Batches returns the number of batches forwarded in the current frame.
func (b *Bridge) Batches() int {
	return b.batches
}
