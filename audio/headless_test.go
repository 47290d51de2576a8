package audio_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/test"
)

type atomicSource struct {
	renders atomic.Int32
}

func (s *atomicSource) Render(quantum []int16) {
	s.renders.Add(1)
}

func TestHeadless(t *testing.T) {
	h := audio.NewHeadless(44100, 441, nil)
	test.ExpectImplements[audio.Context](t, h)

	test.ExpectSuccess(t, errors.Is(h.Stop(), audio.NotStarted))

	src := &atomicSource{}
	test.DemandSuccess(t, h.Start(src))
	test.ExpectSuccess(t, errors.Is(h.Start(src), audio.AlreadyStarted))

	deadline := time.Now().Add(5 * time.Second)
	for src.renders.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	test.DemandSuccess(t, h.Stop())

	n := src.renders.Load()
	test.ExpectSuccess(t, n >= 3)
	test.ExpectEquality(t, h.Rendered(), uint64(n))

	// no more calls to the source after Stop() has returned
	time.Sleep(30 * time.Millisecond)
	test.ExpectEquality(t, src.renders.Load(), n)

	// the context can be restarted
	test.ExpectSuccess(t, h.Start(src))
	test.ExpectSuccess(t, h.Stop())
}
