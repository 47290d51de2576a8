// Package ring implements a lock-free single-producer/single-consumer buffer
// of interleaved stereo 16bit samples.
//
// The producer (the emulation driver) is the only writer of the write index
// and the consumer (the real-time audio goroutine) is the only writer of the
// read index. Each side only reads the other's index and does so through
// sync/atomic. Sample data is written before the write index is published
// and the write index is loaded before any sample is read, so the consumer
// never sees a slot before its data.
//
// The indices are free running counts of stereo frames. The number of frames
// available is always the simple difference between them, which means a full
// buffer and an empty buffer are never confused and the entire capacity is
// usable.
package ring

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Sentinel errors returned by Write() and Read(). Neither error is fatal and
// in both cases the buffer remains in a usable state.
var (
	Overflow = errors.New("ring buffer overflow")
	Underrun = errors.New("ring buffer underrun")
)

// Buffer is a fixed capacity store of stereo frames.
type Buffer struct {
	// capacity in stereo frames. the data slice is twice this length
	capacity uint64
	data     []int16

	// write index is owned by the producer and the read index is owned by the
	// consumer
	wi atomic.Uint64
	ri atomic.Uint64
}

// New creates a Buffer that can hold the specified number of stereo frames.
// A capacity of less than one is a programming error and causes a panic.
func New(capacityFrames int) *Buffer {
	if capacityFrames < 1 {
		panic(fmt.Sprintf("ring: capacity must be positive (%d)", capacityFrames))
	}
	return &Buffer{
		capacity: uint64(capacityFrames),
		data:     make([]int16, capacityFrames*2),
	}
}

// Capacity returns the number of stereo frames the buffer can hold.
func (b *Buffer) Capacity() int {
	return int(b.capacity)
}

// AvailableFrames returns the number of frames that have been published and
// not yet read. The value may be stale by the time it is used but it is never
// more than the number of frames that can be read.
func (b *Buffer) AvailableFrames() int {
	r := b.ri.Load()
	w := b.wi.Load()
	return int(w - r)
}

// Written returns the total number of frames ever published to the buffer.
// The value only changes when Write() succeeds in writing at least one frame.
func (b *Buffer) Written() uint64 {
	return b.wi.Load()
}

// Write appends interleaved stereo samples to the buffer and returns the number
// of stereo frames written. If there is not enough free space then the samples
// are truncated to fit and the Overflow error is returned. Unread frames are
// never overwritten.
//
// A trailing sample that does not complete a stereo frame is ignored.
//
// Must only be called by the producer.
func (b *Buffer) Write(samples []int16) (int, error) {
	w := b.wi.Load()
	r := b.ri.Load()

	free := b.capacity - (w - r)
	n := uint64(len(samples) / 2)

	var err error
	if n > free {
		n = free
		err = Overflow
	}
	if n == 0 {
		return 0, err
	}

	b.copyIn(w, samples[:n*2])

	// publish. the sample data must be in place before this store
	b.wi.Store(w + n)

	return int(n), err
}

// copyIn copies samples into the data slice starting at the frame index,
// wrapping around the end of the slice as required
func (b *Buffer) copyIn(idx uint64, samples []int16) {
	start := (idx % b.capacity) * 2
	c := copy(b.data[start:], samples)
	copy(b.data, samples[c:])
}

// copyOut is the inverse of copyIn()
func (b *Buffer) copyOut(idx uint64, out []int16) {
	start := (idx % b.capacity) * 2
	c := copy(out, b.data[start:])
	copy(out[c:], b.data)
}

// Read fills out with up to len(out)/2 stereo frames and returns the number of
// frames that were actually available. If there are not enough frames the
// remainder of out is filled with silence and the Underrun error is
// returned. The read index only ever advances by the number of real frames.
//
// Must only be called by the consumer.
func (b *Buffer) Read(out []int16) (int, error) {
	r := b.ri.Load()
	w := b.wi.Load()

	want := uint64(len(out) / 2)
	n := min(w-r, want)

	if n > 0 {
		b.copyOut(r, out[:n*2])

		// release the slots to the producer. the samples must have been read
		// before this store
		b.ri.Store(r + n)
	}

	if n < want {
		clear(out[n*2:])
		return int(n), Underrun
	}

	return int(n), nil
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%d/%d frames", b.AvailableFrames(), b.capacity)
}
