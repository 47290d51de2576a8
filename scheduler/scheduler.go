// Package scheduler decides when the emulation advances. There are two
// modes:
//
// In the MutedTimer mode a fixed rate ticker triggers each frame and audio
// is sent to audio.Discard.
//
// In the UnmutedAudio mode there is no ticker. A new ring buffer is created
// for the session, the producer writes its audio to the ring buffer and the
// real-time audio context drains it. A frame is only run when the audio
// consumer asks for more samples.
//
// Only one trigger source is ever active. Each UnmutedAudio session has a
// generation number and a request carrying any other generation number is
// stale and is ignored.
//
// All emulation happens on the goroutine that calls Run(). Other goroutines
// communicate with the Scheduler through RequestMode(), RequestLoad() and
// the Trigger() function, none of which block.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/logger"
	"github.com/jetsetilly/nora32/ring"
)

// Producer is the emulation as seen by the Scheduler. The driver.Driver type
// is the implementation used outside of tests.
type Producer interface {
	LoadROM(data []uint8) error
	RunFrame() error
	BindAudio(audio.Sink)
}

// the number of consecutive audio-triggered frames that may produce no audio
// before the scheduler stops triggering frames on its own behalf
const maxSilentFrames = 8

// Scheduler is the explicit context for a running session. It owns the ring
// buffer, the trigger state and the producer's audio binding.
type Scheduler struct {
	prod      Producer
	actx      audio.Context
	cfg       Config
	newTicker TickerFactory

	// the following fields are only accessed by the Run() goroutine
	mode       Mode
	generation uint64
	ring       *ring.Buffer
	consumer   *audio.Consumer
	ticker     Ticker
	silent     int
	underruns  uint64

	// the consumer stores its generation in pending and then signals wake. the
	// highest generation seen since the last wake is kept
	pending atomic.Uint64
	wake    chan struct{}

	requests    chan Mode
	loads       chan []uint8
	loadResults chan error

	// published state for other goroutines
	publishedMode     atomic.Int32
	publishedRing     atomic.Pointer[ring.Buffer]
	publishedConsumer atomic.Pointer[audio.Consumer]
	frames            atomic.Uint64
	triggers          atomic.Uint64
	stale             atomic.Uint64
}

// Option changes the default behaviour of a new Scheduler.
type Option func(*Scheduler)

// WithTicker replaces the default TickerFactory.
func WithTicker(f TickerFactory) Option {
	return func(s *Scheduler) {
		s.newTicker = f
	}
}

// New creates a Scheduler in the MutedTimer mode. The Config should have
// been validated.
func New(prod Producer, actx audio.Context, cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		prod:        prod,
		actx:        actx,
		cfg:         cfg,
		newTicker:   NewTicker,
		mode:        MutedTimer,
		wake:        make(chan struct{}, 1),
		requests:    make(chan Mode, 1),
		loads:       make(chan []uint8, 1),
		loadResults: make(chan error, 1),
	}
	for _, o := range opts {
		o(s)
	}
	prod.BindAudio(audio.Discard)
	return s
}

// Trigger implements the audio.Trigger interface. It is called by the audio
// consumer from the real-time goroutine and never blocks.
//
// Generations only increase so the pending value never goes down. A late
// call from the consumer of an earlier session must not replace the request
// of the current consumer, which will not ask again until the write index
// moves.
func (s *Scheduler) Trigger(generation uint64) {
	for {
		p := s.pending.Load()
		if generation <= p || s.pending.CompareAndSwap(p, generation) {
			break
		}
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// RequestMode asks the Scheduler to change mode. The request is handled by the
// Run() goroutine at the next opportunity. If there is already an unhandled
// request then it is replaced.
func (s *Scheduler) RequestMode(m Mode) {
	for {
		select {
		case s.requests <- m:
			return
		default:
		}
		select {
		case <-s.requests:
		default:
		}
	}
}

// RequestLoad asks the Scheduler to load a new cartridge image into the
// producer. The result of the load is sent to the LoadResults() channel.
// Returns false if a previous request has not yet been handled.
func (s *Scheduler) RequestLoad(data []uint8) bool {
	select {
	case s.loads <- data:
		return true
	default:
		return false
	}
}

// LoadResults returns the channel on which the results of RequestLoad() are
// sent. A result is dropped if the previous result has not been received.
func (s *Scheduler) LoadResults() <-chan error {
	return s.loadResults
}

// Mode returns the current mode. Safe to call from any goroutine.
func (s *Scheduler) Mode() Mode {
	return Mode(s.publishedMode.Load())
}

// Run is the main loop of the Scheduler. It returns when the context is
// cancelled, after stopping the audio context and the ticker.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.mode == MutedTimer && s.ticker == nil {
		s.startTimer()
	}
	defer s.shutdown()

	for {
		// the tick channel is nil, and therefore never ready, when there is
		// no ticker
		var tick <-chan time.Time
		if s.ticker != nil {
			tick = s.ticker.C()
		}

		select {
		case <-ctx.Done():
			return nil
		case m := <-s.requests:
			s.transition(m)
		case data := <-s.loads:
			s.load(data)
		case <-tick:
			_ = s.runFrame()
		case <-s.wake:
			s.triggered()
		}
	}
}

func (s *Scheduler) shutdown() {
	if s.mode == UnmutedAudio {
		if err := s.actx.Stop(); err != nil {
			logger.Log(logger.Allow, "scheduler", err)
		}
	}
	s.stopTimer()
	s.prod.BindAudio(audio.Discard)
}

func (s *Scheduler) startTimer() {
	s.stopTimer()
	s.ticker = s.newTicker(s.cfg.timerPeriod())
}

func (s *Scheduler) stopTimer() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

func (s *Scheduler) setMode(m Mode) {
	s.mode = m
	s.publishedMode.Store(int32(m))
}

func (s *Scheduler) transition(m Mode) {
	if m == s.mode {
		return
	}

	switch m {
	case UnmutedAudio:
		s.unmute()
	case MutedTimer:
		s.mute()
	}

	logger.Logf(logger.Allow, "scheduler", "audio %s", s.mode)
}

func (s *Scheduler) unmute() {
	s.stopTimer()

	s.generation++
	s.ring = ring.New(s.cfg.CapacityFrames)
	s.consumer = audio.NewConsumer(s.ring, s.cfg.LowWaterFrames, s.generation, s)
	s.silent = 0
	s.underruns = 0
	s.publishedRing.Store(s.ring)
	s.publishedConsumer.Store(s.consumer)

	s.prod.BindAudio(s.ring)
	s.setMode(UnmutedAudio)

	// the consumer's first quantum finds an empty ring and asks for samples so
	// there is no need to run a frame here
	if err := s.actx.Start(s.consumer); err != nil {
		logger.Logf(logger.Allow, "scheduler", "cannot start audio: %v", err)
		s.setMode(MutedTimer)
		s.mute()
	}
}

func (s *Scheduler) mute() {
	if s.mode == UnmutedAudio {
		if err := s.actx.Stop(); err != nil {
			logger.Log(logger.Allow, "scheduler", err)
		}
	}

	s.prod.BindAudio(audio.Discard)
	s.ring = nil
	s.consumer = nil
	s.publishedRing.Store(nil)
	s.publishedConsumer.Store(nil)

	s.setMode(MutedTimer)
	s.startTimer()
}

func (s *Scheduler) load(data []uint8) {
	err := s.prod.LoadROM(data)
	if err != nil {
		logger.Log(logger.Allow, "scheduler", err)
	} else if s.mode == UnmutedAudio {
		// any outstanding request from the consumer may have been answered by
		// frames that produced no audio. run a frame for the new session so
		// that the write index moves
		s.silent = 0
		s.Trigger(s.generation)
	}

	select {
	case s.loadResults <- err:
	default:
	}
}

// triggered is called when the wake channel has been signalled
func (s *Scheduler) triggered() {
	gen := s.pending.Swap(0)
	if gen == 0 {
		return
	}
	if s.mode != UnmutedAudio || gen != s.generation {
		s.stale.Add(1)
		return
	}
	s.triggers.Add(1)

	before := s.ring.Written()
	if err := s.runFrame(); err != nil {
		return
	}

	// the consumer only makes a new request once the write index has moved. if
	// the frame produced no audio then a new frame must be triggered here
	if s.ring.Written() == before {
		s.silent++
		if s.silent < maxSilentFrames {
			s.Trigger(s.generation)
		} else if s.silent == maxSilentFrames {
			logger.Logf(logger.Allow, "scheduler", "no audio from emulation after %d frames", s.silent)
		}
		return
	}
	s.silent = 0
}

func (s *Scheduler) runFrame() error {
	if err := s.prod.RunFrame(); err != nil {
		logger.Log(logger.Allow, "scheduler", err)
		return err
	}
	s.frames.Add(1)

	// underruns are counted by the consumer and reported here because the
	// consumer must not log
	if s.consumer != nil {
		if u := s.consumer.Underruns(); u != s.underruns {
			s.underruns = u
			logger.Log(logger.Allow, "audio", "underrun")
		}
	}

	return nil
}
