// Package testcard is a stand-in emulation core. It accepts any well formed
// cartridge image and produces a deterministic test signal: a set of
// rotating triangles and a two-tone stereo test tone.
//
// It is useful for checking the audio and video path of the host without a
// full emulation of the console.
package testcard

import (
	"math"

	"github.com/jetsetilly/nora32/audio/mix"
	"github.com/jetsetilly/nora32/cartridge"
	"github.com/jetsetilly/nora32/core"
	"github.com/jetsetilly/nora32/draw"
)

// Timing of the test card.
const (
	SampleRate      = 44100
	FrameRate       = 30
	FramesPerUpdate = SampleRate / FrameRate
)

const (
	numTriangles = 3

	// positions are scaled from int16 to clip space by the projection matrix
	positionScale = 1.0 / 1024.0

	leftTone  = 440.0
	rightTone = 660.0
	amplitude = 6000.0
)

// Core implements the core.Core interface.
type Core struct {
	out core.Output
	img cartridge.Image

	// number of frames since the most recent load
	frame uint64

	// oscillator phase for each channel
	phase [2]float64

	// buffers are reused from frame to frame
	samples   []int16
	batch     draw.Batch
	positions []int16
	colors    []uint8
	indices   []uint8
	matrices  []draw.Matrix
}

// New is the preferred method of initialisation for the Core type.
func New() *Core {
	c := &Core{
		samples:   make([]int16, FramesPerUpdate*2),
		positions: make([]int16, numTriangles*3*3),
		colors:    make([]uint8, numTriangles*3*4),
		indices:   make([]uint8, numTriangles*3),
		matrices:  make([]draw.Matrix, numTriangles),
	}

	// each triangle is an equilateral triangle around the origin and uses its
	// own matrix
	for t := range numTriangles {
		for v := range 3 {
			a := float64(v) * 2 * math.Pi / 3
			i := t*3 + v
			c.positions[i*3] = int16(math.Round(math.Sin(a) * 512))
			c.positions[i*3+1] = int16(math.Round(math.Cos(a) * 512))
			c.positions[i*3+2] = int16(t)
			c.indices[i] = uint8(t)
			c.colors[i*4] = uint8(255 * ((i + 0) % 3) / 2)
			c.colors[i*4+1] = uint8(255 * ((i + 1) % 3) / 2)
			c.colors[i*4+2] = uint8(255 * ((i + 2) % 3) / 2)
			c.colors[i*4+3] = 255
		}
	}

	c.batch = draw.Batch{
		Matrices:      c.matrices,
		Positions:     c.positions,
		Colors:        c.colors,
		MatrixIndices: c.indices,
		Count:         numTriangles * 3,
	}

	return c
}

// Attach implements the core.Core interface.
func (c *Core) Attach(out core.Output) {
	c.out = out
}

// LoadROM implements the core.Core interface.
func (c *Core) LoadROM(data []uint8) error {
	img, err := cartridge.Fingerprint(data)
	if err != nil {
		return err
	}
	c.img = img
	c.frame = 0
	c.phase = [2]float64{}
	return nil
}

// Label returns a description of the loaded image.
func (c *Core) Label() string {
	return c.img.Label()
}

// Frame returns the number of frames run since the most recent load.
func (c *Core) Frame() uint64 {
	return c.frame
}

// RunFrame implements the core.Core interface.
func (c *Core) RunFrame() {
	c.frame++

	for t := range numTriangles {
		angle := float32(c.frame) * 0.05 * float32(t+1)
		sin := float32(math.Sin(float64(angle)))
		cos := float32(math.Cos(float64(angle)))

		rot := draw.Matrix{
			cos, sin, 0, 0,
			-sin, cos, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
		scl := draw.Scale(positionScale/float32(t+1), positionScale/float32(t+1), positionScale)
		c.matrices[t] = rot.Multiply(&scl)
	}
	c.out.DrawTriangles(c.batch)
	c.out.DisplayFramebuffer()

	// the right channel is silent on alternate seconds so that the channels
	// can be told apart
	rightOn := (c.frame/FrameRate)%2 == 0

	var left, right [1]int32
	for i := range FramesPerUpdate {
		left[0] = int32(amplitude * math.Sin(c.phase[0]))
		right[0] = 0
		if rightOn {
			right[0] = int32(amplitude * math.Sin(c.phase[1]))
		}
		mix.Stereo(c.samples[i*2:], left[:], right[:])

		c.phase[0] = math.Mod(c.phase[0]+2*math.Pi*leftTone/SampleRate, 2*math.Pi)
		c.phase[1] = math.Mod(c.phase[1]+2*math.Pi*rightTone/SampleRate, 2*math.Pi)
	}
	c.out.OutputAudioSamples(c.samples)
}

// Image returns a minimal cartridge image that the test card will accept.
func Image() []uint8 {
	b := cartridge.NewBuilder()
	entry := b.AddData([]uint8{0x6f, 0x00, 0x00, 0x00})
	_ = b.AddOp(cartridge.OpHeap, 0x1000, cartridge.RAMSize-0x1000)
	_ = b.AddOp(cartridge.OpExec, entry, 0x1000)
	return b.Bytes()
}
