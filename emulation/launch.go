package emulation

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/jetsetilly/nora32/audio"
	"github.com/jetsetilly/nora32/draw"
	"github.com/jetsetilly/nora32/gui"
	"github.com/jetsetilly/nora32/logger"
	"github.com/jetsetilly/nora32/resources"
	"github.com/jetsetilly/nora32/statsview"
	"github.com/jetsetilly/nora32/version"
)

// how often statistics are sent to the GUI
const statsPeriod = 250 * time.Millisecond

// how often the headless loop checks for the end of the run
const headlessPeriod = 10 * time.Millisecond

// prepare the ambient parts of the session. the returned function must be
// called when the session ends
func prepare(env *Environment, st styles, output io.Writer) (func(), error) {
	fmt.Fprintln(output, st.banner.Render(version.Banner()))

	if env.log {
		logger.SetEcho(newEcho(os.Stderr, st.log), true)
	}

	if env.statsview {
		statsview.Launch(output)
	}

	if b, err := resources.Base(); err != nil {
		logger.Log(logger.Allow, "resources", err)
	} else {
		logger.Logf(logger.Allow, "resources", "resource directory is %s", b)
	}

	if !env.profile {
		return func() {}, nil
	}

	f, err := os.Create("cpu.profile")
	if err != nil {
		return nil, fmt.Errorf("performance: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("performance: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		err := f.Close()
		if err != nil {
			logger.Log(logger.Allow, "performance", err)
		}
	}, nil
}

// Launch runs the emulation with the GUI. It returns when endEmulation is
// signalled or when an interrupt signal is received. The audio context is
// normally the oto context provided by the GUI implementation.
func Launch(endEmulation chan bool, g *gui.GUI, env *Environment, actx audio.Context) error {
	st := newStyles()

	done, err := prepare(env, st, os.Stdout)
	if err != nil {
		return err
	}
	defer done()

	e, err := newEmulation(env, actx, g.Frames, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.close(); err != nil {
			e.printErr(err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- e.sched.Run(ctx)
	}()

	e.sched.RequestMode(env.initialMode())
	if err := e.load(gui.ROM{Filename: env.rom}); err != nil {
		e.printErr(err)
		g.PushError(err.Error())
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	defer signal.Stop(sig)

	tck := time.NewTicker(statsPeriod)
	defer tck.Stop()

	for {
		select {
		case <-endEmulation:
			cancel()
			return <-result
		case <-sig:
			cancel()
			return <-result
		case err := <-result:
			return err
		case inp := <-g.UserInput:
			if err := e.input(inp); err != nil {
				e.printErr(err)
				g.PushError(err.Error())
			}
		case err := <-e.sched.LoadResults():
			if err := e.loaded(err); err != nil {
				g.PushError(err.Error())
			} else {
				g.PushLastROM(e.current.Filename)
			}
		case <-tck.C:
			g.PushStats(e.stats())
		}
	}
}

// Summary is the outcome of a headless run.
type Summary struct {
	Frames    uint64
	Displays  int
	Batches   int
	Vertices  int
	Samples   uint64
	Overflows uint64
	Underruns uint64
	Quanta    uint64
	Stale     uint64
	Duration  time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d frames in %.02f seconds: %d displays, %d batches, %d vertices, %d samples, %d quanta, %d overflows, %d underruns, %d stale triggers",
		s.Frames, s.Duration.Seconds(), s.Displays, s.Batches, s.Vertices, s.Samples, s.Quanta, s.Overflows, s.Underruns, s.Stale)
}

// Headless runs the emulation without a window until the number of frames
// specified in the Environment have been run. A headless audio context is
// used in place of an audio device.
func Headless(env *Environment, output io.Writer) (Summary, error) {
	st := newStyles()

	done, err := prepare(env, st, output)
	if err != nil {
		return Summary{}, err
	}
	defer done()

	actx := audio.NewHeadless(env.sampleRate, env.quantum, nil)
	rdr := &draw.Discard{}

	e, err := newEmulation(env, actx, rdr, output)
	if err != nil {
		return Summary{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startTime := time.Now()

	result := make(chan error, 1)
	go func() {
		result <- e.sched.Run(ctx)
	}()

	e.sched.RequestMode(env.initialMode())
	err = e.load(gui.ROM{Filename: env.rom})
	if err != nil {
		e.printErr(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT)
	defer signal.Stop(sig)

	tck := time.NewTicker(headlessPeriod)
	defer tck.Stop()

	// audio underruns counted over the entire run. each audio session has its
	// own consumer so the counts are accumulated on every mode change
	var underruns, quanta uint64
	var last uint64
	var lastQuanta uint64

	for running := err == nil; running; {
		select {
		case <-sig:
			running = false
		case err = <-e.sched.LoadResults():
			err = e.loaded(err)
			running = err == nil
		case <-tck.C:
			s := e.stats()
			if s.Underruns < last || s.Quanta < lastQuanta {
				last, lastQuanta = 0, 0
			}
			underruns += s.Underruns - last
			quanta += s.Quanta - lastQuanta
			last, lastQuanta = s.Underruns, s.Quanta
			if s.Frames >= uint64(env.frames) {
				running = false
			}
		}
	}

	cancel()
	if rerr := <-result; rerr != nil && err == nil {
		err = rerr
	}

	if cerr := e.close(); cerr != nil && err == nil {
		err = cerr
	}

	s := e.sched.Stats()
	sum := Summary{
		Frames:    s.Frames,
		Displays:  rdr.Displays,
		Batches:   rdr.Batches,
		Vertices:  rdr.Vertices,
		Samples:   e.driver.Samples(),
		Overflows: e.driver.Overflows(),
		Underruns: underruns,
		Quanta:    quanta,
		Stale:     s.Stale,
		Duration:  time.Since(startTime),
	}

	if err != nil {
		return sum, err
	}

	e.print(st.stats, sum.String())

	return sum, nil
}
