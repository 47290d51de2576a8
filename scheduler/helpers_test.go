package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/nora32/audio"
)

// producer writes a fixed number of audio frames to the bound sink on every
// frame
type producer struct {
	sink    audio.Sink
	frames  atomic.Int32
	loaded  bool
	loadErr error
	audio   []int16
}

var notLoaded = errors.New("not loaded")

func newProducer(audioFrames int) *producer {
	return &producer{
		loaded: true,
		audio:  make([]int16, audioFrames*2),
	}
}

func (p *producer) LoadROM(data []uint8) error {
	if p.loadErr != nil {
		p.loaded = false
		return p.loadErr
	}
	p.loaded = true
	return nil
}

func (p *producer) RunFrame() error {
	if !p.loaded {
		return notLoaded
	}
	p.frames.Add(1)
	_, _ = p.sink.Write(p.audio)
	return nil
}

func (p *producer) BindAudio(s audio.Sink) {
	p.sink = s
}

// audioContext records the most recent Source. it never calls the source
// itself. tests call Render() on the source directly
type audioContext struct {
	crit     sync.Mutex
	src      audio.Source
	started  int
	stopped  int
	startErr error
}

func (a *audioContext) Start(src audio.Source) error {
	a.crit.Lock()
	defer a.crit.Unlock()
	if a.startErr != nil {
		return a.startErr
	}
	a.src = src
	a.started++
	return nil
}

func (a *audioContext) Stop() error {
	a.crit.Lock()
	defer a.crit.Unlock()
	a.stopped++
	return nil
}

func (a *audioContext) source() audio.Source {
	a.crit.Lock()
	defer a.crit.Unlock()
	return a.src
}

// manualTicker is only ticked by the test
type manualTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time)}
}

func (t *manualTicker) C() <-chan time.Time {
	return t.c
}

func (t *manualTicker) Stop() {
	t.stopped.Store(true)
}

// tickers creates a new manualTicker for every request and keeps them all
type tickers struct {
	crit sync.Mutex
	all  []*manualTicker
}

func (t *tickers) factory(_ time.Duration) Ticker {
	t.crit.Lock()
	defer t.crit.Unlock()
	m := newManualTicker()
	t.all = append(t.all, m)
	return m
}

func (t *tickers) latest() *manualTicker {
	t.crit.Lock()
	defer t.crit.Unlock()
	if len(t.all) == 0 {
		return nil
	}
	return t.all[len(t.all)-1]
}

func (t *tickers) count() int {
	t.crit.Lock()
	defer t.crit.Unlock()
	return len(t.all)
}

func testConfig() Config {
	return Config{
		SampleRate:     44100,
		QuantumFrames:  128,
		LowWaterFrames: 2205,
		CapacityFrames: 8820,
		TimerHz:        30,
	}
}

// waitFor polls the condition until it is true or until the timeout expires
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
