package gui

import (
	"sync"

	"github.com/jetsetilly/nora32/draw"
)

// Frame is a completed frame of draw commands.
type Frame struct {
	// only the first Count entries of Batches are in use. the remaining
	// entries are kept so that their slices can be reused
	Batches []draw.Batch
	Count   int

	// sequence number of the frame. the first frame is number one
	Seq uint64
}

// add a copy of the batch to the frame. the memory of an earlier batch in the
// same position is reused
func (f *Frame) add(b draw.Batch) {
	if f.Count >= len(f.Batches) {
		f.Batches = append(f.Batches, draw.Batch{})
	}
	d := &f.Batches[f.Count]
	d.Matrices = append(d.Matrices[:0], b.Matrices...)
	d.Positions = append(d.Positions[:0], b.Positions[:b.Count*3]...)
	d.Colors = append(d.Colors[:0], b.Colors[:b.Count*4]...)
	d.MatrixIndices = append(d.MatrixIndices[:0], b.MatrixIndices[:b.Count]...)
	d.Count = b.Count
	f.Count++
}

// Vertices returns the total number of vertices in the frame.
func (f *Frame) Vertices() int {
	var n int
	for _, b := range f.Batches[:f.Count] {
		n += b.Count
	}
	return n
}

// Exchange is a triple buffer of frames. It implements the draw.Renderer
// interface on the emulation side and supplies the most recently completed
// frame to the GUI with the Latest() function.
//
// The emulation never waits for the GUI. If the GUI has not collected a
// completed frame before the next one is displayed then the older frame is
// dropped.
type Exchange struct {
	// the frame being built. only accessed by the emulation
	back *Frame
	seq  uint64

	// the frame being drawn. only accessed by the GUI
	front *Frame

	crit    sync.Mutex
	ready   *Frame
	fresh   bool
	dropped uint64
}

// NewExchange is the preferred method of initialisation for the Exchange
// type.
func NewExchange() *Exchange {
	return &Exchange{
		back:  &Frame{},
		front: &Frame{},
		ready: &Frame{},
	}
}

// DrawTriangles implements the draw.Renderer interface.
func (e *Exchange) DrawTriangles(b draw.Batch) {
	e.back.add(b)
}

// DisplayFramebuffer implements the draw.Renderer interface.
func (e *Exchange) DisplayFramebuffer() {
	e.seq++
	e.back.Seq = e.seq

	e.crit.Lock()
	if e.fresh {
		e.dropped++
	}
	e.back, e.ready = e.ready, e.back
	e.fresh = true
	e.crit.Unlock()

	e.back.Count = 0
}

// Latest returns the most recently completed frame and true if the frame has
// not been returned before. The frame remains valid until the next call to
// Latest(). Before the first frame has been completed the returned frame is
// empty and has a Seq value of zero.
//
// Must only be called by the GUI.
func (e *Exchange) Latest() (*Frame, bool) {
	e.crit.Lock()
	defer e.crit.Unlock()
	if !e.fresh {
		return e.front, false
	}
	e.front, e.ready = e.ready, e.front
	e.fresh = false
	return e.front, true
}

// Dropped returns the number of completed frames that were never collected
// by the GUI.
func (e *Exchange) Dropped() uint64 {
	e.crit.Lock()
	defer e.crit.Unlock()
	return e.dropped
}
