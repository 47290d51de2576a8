package driver_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/core"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/driver"
	"github.com/jetsetilly/nora32/ring"
	"github.com/jetsetilly/nora32/test"
)

// fakeCore outputs a fixed number of audio frames on every frame. it can be
// made to fail to load or to panic on a specific frame
type fakeCore struct {
	out       core.Output
	loadErr   error
	panicOn   int
	runs      int
	audio     []int16
	drawBatch bool
}

func (c *fakeCore) Attach(o core.Output) {
	c.out = o
}

func (c *fakeCore) LoadROM(data []uint8) error {
	return c.loadErr
}

func (c *fakeCore) RunFrame() {
	c.runs++
	c.out.OutputAudioSamples(c.audio)
	if c.runs == c.panicOn {
		panic("bad instruction")
	}
	if c.drawBatch {
		c.out.DrawTriangles(draw.Batch{
			Matrices:      []draw.Matrix{draw.Identity},
			Positions:     make([]int16, 9),
			Colors:        make([]uint8, 12),
			MatrixIndices: make([]uint8, 3),
			Count:         3,
		})
	}
	c.out.DisplayFramebuffer()
}

func TestMalformedImage(t *testing.T) {
	c := &fakeCore{loadErr: fmt.Errorf("%w: bad magic", core.LoadError)}
	d := driver.NewDriver(c, &draw.Discard{})

	err := d.LoadROM([]uint8{0x00})
	test.ExpectSuccess(t, errors.Is(err, core.LoadError))
	test.ExpectFailure(t, d.Loaded())

	for range 10 {
		test.ExpectSuccess(t, errors.Is(d.RunFrame(), driver.NotLoaded))
	}
	test.ExpectEquality(t, c.runs, 0)
}

func TestLoadErrorIsWrapped(t *testing.T) {
	c := &fakeCore{loadErr: errors.New("unwrapped")}
	d := driver.NewDriver(c, &draw.Discard{})
	err := d.LoadROM(nil)
	test.ExpectSuccess(t, errors.Is(err, core.LoadError))

	// a later successful load allows frames to run
	c.loadErr = nil
	test.DemandSuccess(t, d.LoadROM(nil))
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, c.runs, 1)
}

func TestAudioRouting(t *testing.T) {
	c := &fakeCore{audio: make([]int16, 20)}
	for i := range c.audio {
		c.audio[i] = int16(i)
	}

	rec := &draw.Recorder{}
	d := driver.NewDriver(c, rec)
	test.DemandSuccess(t, d.LoadROM(nil))

	// audio is discarded by default
	test.ExpectSuccess(t, d.RunFrame())

	r := ring.New(25)
	d.BindAudio(r)
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, r.AvailableFrames(), 10)
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, r.AvailableFrames(), 20)
	test.ExpectEquality(t, d.Overflows(), uint64(0))

	// the third frame only partially fits
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, r.AvailableFrames(), 25)
	test.ExpectEquality(t, d.Overflows(), uint64(1))

	d.BindAudio(nil)
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, r.AvailableFrames(), 25)

	test.ExpectEquality(t, d.Frames(), uint64(5))
	test.ExpectEquality(t, d.Samples(), uint64(50))
	test.ExpectEquality(t, d.Displays(), uint64(5))
	test.ExpectEquality(t, len(rec.Frames), 5)
}

type countingSink struct {
	frames int
}

func (s *countingSink) Write(samples []int16) (int, error) {
	s.frames += len(samples) / 2
	return len(samples) / 2, nil
}

func TestRecorder(t *testing.T) {
	c := &fakeCore{audio: make([]int16, 8)}
	d := driver.NewDriver(c, &draw.Discard{})
	test.DemandSuccess(t, d.LoadROM(nil))

	s := &countingSink{}
	d.SetRecorder(s)
	d.BindAudio(audio.Discard)
	for range 3 {
		test.ExpectSuccess(t, d.RunFrame())
	}
	test.ExpectEquality(t, s.frames, 12)

	d.SetRecorder(nil)
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, s.frames, 12)
}

func TestFault(t *testing.T) {
	c := &fakeCore{audio: make([]int16, 4), panicOn: 3, drawBatch: true}
	d := driver.NewDriver(c, &draw.Discard{})
	test.DemandSuccess(t, d.LoadROM(nil))

	r := ring.New(100)
	d.BindAudio(r)

	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectSuccess(t, d.RunFrame())

	err := d.RunFrame()
	test.ExpectSuccess(t, errors.Is(err, driver.Halted))

	// the audio written before the fault is intact
	test.ExpectEquality(t, r.AvailableFrames(), 6)

	// the core is not called again
	test.ExpectSuccess(t, errors.Is(d.RunFrame(), driver.Halted))
	test.ExpectEquality(t, c.runs, 3)
	test.ExpectEquality(t, d.Frames(), uint64(2))

	// reloading clears the fault
	c.panicOn = 0
	test.DemandSuccess(t, d.LoadROM(nil))
	test.ExpectSuccess(t, d.RunFrame())
	test.ExpectEquality(t, c.runs, 4)
}

func TestLoadPanic(t *testing.T) {
	d := driver.NewDriver(&panicLoader{}, &draw.Discard{})
	err := d.LoadROM(nil)
	test.ExpectSuccess(t, errors.Is(err, core.LoadError))
	test.ExpectFailure(t, d.Loaded())
}

type panicLoader struct {
	fakeCore
}

func (p *panicLoader) LoadROM(data []uint8) error {
	panic("index out of range")
}
