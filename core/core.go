// Package core defines the contract between the host and an emulation core.
//
// A core is strictly pull driven. It only advances when RunFrame() is called
// and it delivers its output synchronously through the Output interface
// during that call. The core never runs on its own goroutine.
package core

import (
	"errors"

	"github.com/jetsetilly/nora32/draw"
)

// LoadError is wrapped by every error returned by LoadROM() for a malformed
// image. A session whose load failed must not be advanced.
var LoadError = errors.New("load error")

// Output receives the results of emulation. Slices passed to the Output
// functions are only valid for the duration of the call.
type Output interface {
	// zero or more batches of triangles per frame
	DrawTriangles(draw.Batch)

	// exactly one display event per frame, after all batches
	DisplayFramebuffer()

	// zero or one batch of interleaved stereo samples per frame. the number
	// of samples can vary from frame to frame
	OutputAudioSamples(samples []int16)
}

// Core is the emulation. Implementations need not be safe for concurrent use
// and the host guarantees that all calls are made from the same goroutine.
type Core interface {
	// Attach is called once, before any other function
	Attach(Output)

	// LoadROM prepares the core with a cartridge image. the error will wrap
	// LoadError if the image is malformed
	LoadROM(data []uint8) error

	// RunFrame advances the emulation by exactly one frame
	RunFrame()
}
