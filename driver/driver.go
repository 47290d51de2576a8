// Package driver owns the emulation session. It advances the core one frame at
// a time on request and routes the core's output to the draw bridge and to
// the currently bound audio sink.
//
// All functions must be called from the same goroutine. Only the audio
// samples and the draw batches leave that goroutine and both are copied out
// before the next call to RunFrame().
package driver

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/core"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/logger"
	"github.com/jetsetilly/nora32/ring"
)

// Sentinel errors returned by RunFrame().
var (
	NotLoaded = errors.New("no cartridge loaded")
	Halted    = errors.New("emulation halted")
)

// Driver implements the core.Output interface on behalf of the core.
type Driver struct {
	core   core.Core
	bridge *draw.Bridge

	// the session must be loaded before RunFrame() will call the core
	loaded bool

	// the core faulted. the session cannot continue until it is reloaded
	halted error

	// sink is the ring buffer or audio.Discard depending on the playback mode
	sink audio.Sink

	// recorder receives a copy of all audio if it is not nil
	recorder audio.Sink

	frames    uint64
	overflows uint64
	samples   uint64
}

// NewDriver creates a Driver for the core. The driver attaches itself to the
// core as the core's Output. The initial audio sink is audio.Discard.
func NewDriver(c core.Core, r draw.Renderer) *Driver {
	d := &Driver{
		core:   c,
		bridge: draw.NewBridge(r),
		sink:   audio.Discard,
	}
	c.Attach(d)
	return d
}

// LoadROM loads a cartridge image into the core. The returned error always
// wraps core.LoadError. A failed load leaves the driver in the not loaded
// state.
func (d *Driver) LoadROM(data []uint8) (err error) {
	d.loaded = false

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: core panic during load: %v", core.LoadError, r)
		}
	}()

	err = d.core.LoadROM(data)
	if err != nil {
		if !errors.Is(err, core.LoadError) {
			err = fmt.Errorf("%w: %w", core.LoadError, err)
		}
		return err
	}

	d.loaded = true
	d.halted = nil
	d.frames = 0
	return nil
}

// Loaded returns true if the most recent call to LoadROM() was successful.
func (d *Driver) Loaded() bool {
	return d.loaded
}

// RunFrame advances the emulation by one frame. The core is not called if no
// cartridge has been loaded or if the core has faulted.
//
// A panic in the core is recovered and halts the session. The ring buffer and
// sink binding are not affected.
func (d *Driver) RunFrame() (err error) {
	if !d.loaded {
		return NotLoaded
	}
	if d.halted != nil {
		return d.halted
	}

	defer func() {
		if r := recover(); r != nil {
			d.halted = fmt.Errorf("%w: %v", Halted, r)
			logger.Logf(logger.Allow, "driver", "core fault on frame %d: %v", d.frames+1, r)
			logger.Log(logger.Allow, "driver", string(debug.Stack()))
			err = d.halted
		}
	}()

	d.bridge.BeginFrame()
	d.core.RunFrame()
	d.frames++

	return nil
}

// BindAudio changes the destination of audio samples. A nil sink is treated as
// audio.Discard.
func (d *Driver) BindAudio(s audio.Sink) {
	if s == nil {
		s = audio.Discard
	}
	d.sink = s
}

// SetRecorder sets a sink that receives a copy of all audio regardless of the
// bound sink. A nil value removes the recorder.
func (d *Driver) SetRecorder(s audio.Sink) {
	d.recorder = s
}

// DrawTriangles implements the core.Output interface.
func (d *Driver) DrawTriangles(b draw.Batch) {
	d.bridge.DrawTriangles(b)
}

// DisplayFramebuffer implements the core.Output interface.
func (d *Driver) DisplayFramebuffer() {
	d.bridge.DisplayFramebuffer()
}

// OutputAudioSamples implements the core.Output interface.
func (d *Driver) OutputAudioSamples(samples []int16) {
	d.samples += uint64(len(samples) / 2)

	if d.recorder != nil {
		if _, err := d.recorder.Write(samples); err != nil {
			logger.Log(logger.Allow, "driver", err)
		}
	}

	n, err := d.sink.Write(samples)
	if err != nil {
		if errors.Is(err, ring.Overflow) {
			d.overflows++
			logger.Logf(logger.Allow, "driver", "audio overflow: %d of %d frames dropped", len(samples)/2-n, len(samples)/2)
		} else {
			logger.Log(logger.Allow, "driver", err)
		}
	}
}

// Frames returns the number of frames run since the most recent load.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Overflows returns the number of audio batches that were truncated.
func (d *Driver) Overflows() uint64 {
	return d.overflows
}

// Samples returns the total number of stereo frames output by the core.
func (d *Driver) Samples() uint64 {
	return d.samples
}

// Displays returns the number of display events passed to the renderer.
func (d *Driver) Displays() uint64 {
	return d.bridge.Frames()
}
