package gui_test

import (
	"testing"

	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/test"
)

func triangle(x int16) draw.Batch {
	return draw.Batch{
		Matrices:      []draw.Matrix{draw.Identity},
		Positions:     []int16{x, 0, 0, x + 10, 0, 0, x, 10, 0},
		Colors:        []uint8{255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255},
		MatrixIndices: []uint8{0, 0, 0},
		Count:         3,
	}
}

func TestExchange(t *testing.T) {
	ex := gui.NewExchange()
	test.ExpectImplements[draw.Renderer](t, ex)

	f, ok := ex.Latest()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, f.Seq, uint64(0))
	test.ExpectEquality(t, f.Count, 0)

	b := triangle(5)
	ex.DrawTriangles(b)
	ex.DrawTriangles(triangle(20))
	ex.DisplayFramebuffer()

	// the source batch is reused by the emulation. the copy in the exchange is
	// unaffected
	b.Positions[0] = 99

	f, ok = ex.Latest()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, f.Seq, uint64(1))
	test.DemandEquality(t, f.Count, 2)
	test.ExpectEquality(t, f.Batches[0].Positions[0], int16(5))
	test.ExpectEquality(t, f.Batches[1].Positions[0], int16(20))
	test.ExpectEquality(t, f.Vertices(), 6)

	// no new frame
	g, ok := ex.Latest()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, g, f)
}

func TestExchangeDrop(t *testing.T) {
	ex := gui.NewExchange()

	ex.DrawTriangles(triangle(1))
	ex.DisplayFramebuffer()
	ex.DisplayFramebuffer()
	ex.DrawTriangles(triangle(3))
	ex.DisplayFramebuffer()

	test.ExpectEquality(t, ex.Dropped(), uint64(2))

	f, ok := ex.Latest()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, f.Seq, uint64(3))
	test.DemandEquality(t, f.Count, 1)
	test.ExpectEquality(t, f.Batches[0].Positions[0], int16(3))
}

func TestExchangeConcurrent(t *testing.T) {
	ex := gui.NewExchange()
	done := make(chan bool)

	go func() {
		for i := range 1000 {
			ex.DrawTriangles(triangle(int16(i)))
			ex.DisplayFramebuffer()
		}
		done <- true
	}()

	var last uint64
	var running = true
	for running {
		select {
		case <-done:
			running = false
		default:
		}
		f, ok := ex.Latest()
		if ok {
			test.DemandSuccess(t, f.Seq > last)
			test.DemandEquality(t, f.Count, 1)
			test.DemandEquality(t, f.Batches[0].Positions[0], int16(f.Seq-1))
			last = f.Seq
		}
	}

	f, _ := ex.Latest()
	test.ExpectEquality(t, f.Seq, uint64(1000))
}

func TestPush(t *testing.T) {
	g := gui.NewGUI()

	g.PushError("first")
	g.PushError("second")
	test.ExpectEquality(t, <-g.ShowError, "first")

	for range cap(g.UserInput) {
		test.ExpectSuccess(t, g.PushInput(gui.Input{Action: gui.ToggleAudio}))
	}
	test.ExpectFailure(t, g.PushInput(gui.Input{Action: gui.ToggleAudio}))
}
