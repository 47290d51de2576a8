package emulation

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/core"
	"github.com/jetsetilly/nora32/core/testcard"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/scheduler"
	"github.com/jetsetilly/nora32/test"
)

func headless(t *testing.T, args ...string) (Summary, error) {
	t.Helper()
	env, err := ParseArgs(append([]string{"-headless"}, args...), io.Discard)
	test.DemandSuccess(t, err)
	return Headless(env, io.Discard)
}

// every frame of the test card is one display event, one batch of three
// triangles and one frame's worth of audio
func checkSummary(t *testing.T, sum Summary) {
	t.Helper()
	test.ExpectEquality(t, sum.Displays, int(sum.Frames))
	test.ExpectEquality(t, sum.Batches, int(sum.Frames))
	test.ExpectEquality(t, sum.Vertices, int(sum.Frames)*9)
	test.ExpectEquality(t, sum.Samples, sum.Frames*testcard.FramesPerUpdate)
	test.ExpectEquality(t, sum.Overflows, uint64(0))
}

func TestHeadlessMuted(t *testing.T) {
	sum, err := headless(t, "-frames", "5")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, sum.Frames >= 5)
	test.ExpectEquality(t, sum.Quanta, uint64(0))
	checkSummary(t, sum)
}

func TestHeadlessUnmuted(t *testing.T) {
	sum, err := headless(t, "-unmute", "-frames", "5")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, sum.Frames >= 5)
	test.ExpectSuccess(t, sum.Quanta > 0)
	checkSummary(t, sum)
}

func TestHeadlessRecording(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "rec.wav")

	sum, err := headless(t, "-frames", "3", "-wav", fn)
	test.DemandSuccess(t, err)

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, uint64(len(buf.Data)), sum.Samples*2)
}

func TestHeadlessBadROM(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "bad.nr32")
	test.DemandSuccess(t, os.WriteFile(fn, []uint8("not a cartridge"), 0o600))
	sum, err := headless(t, "-frames", "5", fn)
	test.ExpectSuccess(t, errors.Is(err, core.LoadError))
	test.ExpectEquality(t, sum.Frames, uint64(0))

	_, err = headless(t, "-frames", "5", filepath.Join(dir, "missing.nr32"))
	test.ExpectSuccess(t, errors.Is(err, core.LoadError))
}

func TestHeadlessROMFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "testcard.nr32")
	test.DemandSuccess(t, os.WriteFile(fn, testcard.Image(), 0o600))

	sum, err := headless(t, "-frames", "2", fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, sum.Frames >= 2)
}

// stand in for the audio device. nothing is ever rendered
type silentContext struct{}

func (silentContext) Start(_ audio.Source) error { return nil }
func (silentContext) Stop() error               { return nil }

func TestInput(t *testing.T) {
	env, err := ParseArgs([]string{}, io.Discard)
	test.DemandSuccess(t, err)

	e, err := newEmulation(env, silentContext{}, &draw.Discard{}, io.Discard)
	test.DemandSuccess(t, err)

	// the scheduler is not running so the request stays in the queue
	test.ExpectSuccess(t, e.input(gui.Input{Action: gui.LoadROM, Data: gui.ROM{Filename: "card", Data: testcard.Image()}}))
	test.ExpectSuccess(t, errors.Is(e.input(gui.Input{Action: gui.Reset}), LoadInProgress))
	test.ExpectFailure(t, e.input(gui.Input{Action: gui.LoadROM, Data: "card"}))

	// the load result is handled as if it came from the scheduler
	test.ExpectSuccess(t, e.loaded(nil))
	test.ExpectEquality(t, e.current.Filename, "card")
	test.ExpectFailure(t, e.loaded(errors.New("bad")))
	test.ExpectEquality(t, e.current.Filename, "card")

	test.ExpectSuccess(t, e.input(gui.Input{Action: gui.ToggleAudio}))
	test.ExpectEquality(t, e.sched.Mode(), scheduler.MutedTimer)
}
