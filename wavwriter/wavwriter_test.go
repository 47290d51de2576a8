package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/test"
	"github.com/jetsetilly/nora32/wavwriter"
)

func TestRecording(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	w, err := wavwriter.New(fn, 44100)
	test.DemandSuccess(t, err)
	test.ExpectImplements[audio.Sink](t, w)

	n, err := w.Write([]int16{100, -100, 200, -200, 300})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)

	n, err = w.Write([]int16{400, -400})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, w.Frames(), uint64(3))

	test.DemandSuccess(t, w.Close())
	test.ExpectSuccess(t, w.Close())

	_, err = w.Write([]int16{0, 0})
	test.ExpectFailure(t, err)

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(44100))
	test.ExpectEquality(t, dec.NumChans, uint16(2))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)

	expected := []int{100, -100, 200, -200, 400, -400}
	test.DemandEquality(t, len(buf.Data), len(expected))
	for i := range expected {
		test.ExpectEquality(t, buf.Data[i], expected[i], i)
	}
}

func TestCreateFailure(t *testing.T) {
	_, err := wavwriter.New(filepath.Join(t.TempDir(), "missing", "out.wav"), 44100)
	test.ExpectFailure(t, err)
}
