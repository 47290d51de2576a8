package audio

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Sentinel errors for the Headless context.
var (
	AlreadyStarted = errors.New("audio context already started")
	NotStarted     = errors.New("audio context not started")
)

// Headless is a Context that has no audio device. It renders one quantum every
// quantum period using a ticker. It is used when running without a window and
// for testing.
type Headless struct {
	quantum int
	period  time.Duration

	// output is optional. rendered quanta are passed to it, from the real-time
	// goroutine, when it is not nil
	output Sink

	done chan struct{}
	wg   sync.WaitGroup

	rendered atomic.Uint64
}

// NewHeadless creates a new Headless context for the sample rate and quantum
// size. The output Sink can be nil.
func NewHeadless(sampleRate int, quantumFrames int, output Sink) *Headless {
	return &Headless{
		quantum: quantumFrames,
		period:  time.Second * time.Duration(quantumFrames) / time.Duration(sampleRate),
		output:  output,
	}
}

// Start implements the Context interface.
func (h *Headless) Start(src Source) error {
	if h.done != nil {
		return AlreadyStarted
	}
	h.done = make(chan struct{})

	// the scratch buffer is allocated here so that the real-time goroutine
	// never allocates
	scratch := make([]int16, h.quantum*2)

	h.wg.Add(1)
	go func(done chan struct{}) {
		defer h.wg.Done()

		tck := time.NewTicker(h.period)
		defer tck.Stop()

		for {
			select {
			case <-done:
				return
			case <-tck.C:
				src.Render(scratch)
				if h.output != nil {
					_, _ = h.output.Write(scratch)
				}
				h.rendered.Add(1)
			}
		}
	}(h.done)

	return nil
}

// Stop implements the Context interface. Unlike other contexts, Stop() waits
// for the real-time goroutine to finish.
func (h *Headless) Stop() error {
	if h.done == nil {
		return NotStarted
	}
	close(h.done)
	h.wg.Wait()
	h.done = nil
	return nil
}

// Rendered returns the number of quanta rendered since creation.
func (h *Headless) Rendered() uint64 {
	return h.rendered.Load()
}
